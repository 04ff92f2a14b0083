package boxfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjibson/boxfmt"
)

func jsonOpts(width int) boxfmt.Options {
	opts := boxfmt.DefaultOptions()
	opts.Pretty.Margin = width
	opts.Pretty.IndentUnit = 2
	return opts
}

func TestFmtJSON(t *testing.T) {
	const src = `{"b": [1, 2, {"c": null}], "a": "x"}`
	for _, tc := range []struct {
		width int
		want  string
	}{
		{80, `{"a": "x", "b": [1, 2, {"c": null}]}`},
		{30, "{\n  \"a\": \"x\",\n  \"b\": [1, 2, {\"c\": null}]\n}"},
	} {
		got, err := boxfmt.FmtJSON(jsonOpts(tc.width), src)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "width %d", tc.width)
	}
}

func TestFmtJSONEmpty(t *testing.T) {
	got, err := boxfmt.FmtJSON(jsonOpts(80), `{"a": {}, "b": []}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {}, "b": []}`, got)

	got, err = boxfmt.FmtJSON(jsonOpts(80), `"s"`)
	require.NoError(t, err)
	assert.Equal(t, `"s"`, got)
}

func TestFmtJSONError(t *testing.T) {
	_, err := boxfmt.FmtJSON(jsonOpts(80), `{"a": `)
	assert.Error(t, err)
}
