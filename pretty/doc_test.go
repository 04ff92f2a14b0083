package pretty_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjibson/boxfmt/pretty"
)

func TestDocs(t *testing.T) {
	ab := pretty.Join(",", pretty.Text("a"), pretty.Text("b"))
	for _, tc := range []struct {
		name   string
		doc    pretty.Doc
		margin int
		out    string
	}{
		{"bracket flat", pretty.Bracket("[", ab, "]"), 80, "[a, b]"},
		{"bracket broken", pretty.Bracket("[", ab, "]"), 4, "[\n  a,\n  b\n]"},
		{"nest under flat", pretty.NestUnder(pretty.Text("key:"), pretty.Text("value")), 80, "key: value"},
		{"nest under broken", pretty.NestUnder(pretty.Text("key:"), pretty.Text("value")), 8, "key:\n  value"},
		{
			"nest under fill",
			pretty.NestUnder(pretty.Text("SELECT"), pretty.Fill(pretty.Join(",", pretty.Text("aa"), pretty.Text("bb"), pretty.Text("cc")))),
			10,
			"SELECT\n  aa, bb,\n  cc",
		},
		{
			"fill packs",
			pretty.Fill(pretty.Fold(pretty.ConcatLine, pretty.Text("aa"), pretty.Text("bb"), pretty.Text("cc"))),
			6,
			"aa bb\ncc",
		},
		{
			"group breaks all",
			pretty.Group(pretty.Fold(pretty.ConcatLine, pretty.Text("aa"), pretty.Text("bb"), pretty.Text("cc"))),
			6,
			"aa\nbb\ncc",
		},
		{
			"align",
			pretty.Concat(pretty.Text("f("), pretty.Concat(pretty.AlignGroup(ab), pretty.Text(")"))),
			4,
			"f(a,\n  b)",
		},
		{
			"trailing comma",
			pretty.Group(pretty.Fold(pretty.Concat,
				pretty.Text("{"),
				pretty.NestT(pretty.Concat(pretty.SoftBreak, ab)),
				pretty.TrailingComma,
				pretty.Text("}"),
			)),
			4,
			"{\n  a,\n  b,\n}",
		},
		{
			"hard line",
			pretty.Group(pretty.Fold(pretty.Concat, pretty.Text("a"), pretty.Line, pretty.Text("b"), pretty.HardLine, pretty.Text("c"))),
			80,
			"a\nb\nc",
		},
		{
			"separator after nested bracket",
			pretty.Bracket("[", pretty.Join(",",
				pretty.Bracket("[", pretty.Join(",", pretty.Text("aaa"), pretty.Text("bbb")), "]"),
				pretty.Text("c"),
			), "]"),
			12,
			"[\n  [\n    aaa,\n    bbb\n  ],\n  c\n]",
		},
		{"nil", pretty.Concat(nil, pretty.Nil), 80, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pretty.PrettyString(context.Background(), tc.doc, pretty.Config{Margin: tc.margin, IndentUnit: 2})
			require.NoError(t, err)
			assert.Equal(t, tc.out, got)
		})
	}
}

func TestPrettyWriter(t *testing.T) {
	var buf bytes.Buffer
	d := pretty.Bracket("(", pretty.Text("x"), ")")
	require.NoError(t, pretty.Pretty(context.Background(), d, &buf, pretty.DefaultConfig()))
	assert.Equal(t, "(x)", buf.String())
}

func TestPrettyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pretty.PrettyString(ctx, pretty.Text("x"), pretty.DefaultConfig())
	assert.Equal(t, context.Canceled, err)
}
