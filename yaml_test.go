package boxfmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mjibson/boxfmt"
)

func fmtYAML(t *testing.T, width int, src string) string {
	t.Helper()
	got, err := boxfmt.FmtYAML(jsonOpts(width), src)
	require.NoError(t, err)
	return got
}

// sameYAML checks that a and b decode to the same values.
func sameYAML(t *testing.T, a, b string) {
	t.Helper()
	var av, bv []interface{}
	for _, pair := range []struct {
		src string
		out *[]interface{}
	}{{a, &av}, {b, &bv}} {
		dec := yaml.NewDecoder(strings.NewReader(pair.src))
		for {
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				break
			}
			*pair.out = append(*pair.out, v)
		}
	}
	assert.Equal(t, av, bv)
}

func TestFmtYAML(t *testing.T) {
	const src = "a: 1\nb: [x, y]\nc:\n  d: true\n"
	assert.Equal(t, "{a: 1, b: [x, y], c: {d: true}}", fmtYAML(t, 80, src))
	got := fmtYAML(t, 20, src)
	assert.Equal(t, "{\n  a: 1,\n  b: [x, y],\n  c: {d: true}\n}", got)
	sameYAML(t, src, got)
}

func TestFmtYAMLScalars(t *testing.T) {
	const src = `
plain: hello
comma: "a, b"
single: 'it''s'
empty: ""
none:
block: |
  line one
  line two
anchored: &x {k: v}
alias: *x
tagged: !!str 12
`
	got := fmtYAML(t, 200, src)
	assert.Contains(t, got, `comma: "a, b"`)
	assert.Contains(t, got, `single: 'it''s'`)
	assert.Contains(t, got, `none: null`)
	assert.Contains(t, got, `block: "line one\nline two\n"`)
	assert.Contains(t, got, `anchored: &x {k: v}`)
	assert.Contains(t, got, `alias: *x`)
	assert.Contains(t, got, `tagged: !!str 12`)
	sameYAML(t, src, got)
}

func TestFmtYAMLScalarTags(t *testing.T) {
	const src = "a: ! 123\nb: !!str 5\nc: \"7\"\nd: &n ! 8\ne: 9\n"
	got := fmtYAML(t, 80, src)
	assert.Equal(t, `{a: ! 123, b: !!str 5, c: "7", d: &n ! 8, e: 9}`, got)
	sameYAML(t, src, got)
}

func TestFmtYAMLComments(t *testing.T) {
	const src = `name: app

# ports to open
ports:
  - 80
  - 443 # tls
`
	got := fmtYAML(t, 80, src)
	assert.Contains(t, got, "# ports to open")
	assert.Contains(t, got, "# tls")
	assert.Less(t, strings.Index(got, "# ports to open"), strings.Index(got, "ports:"))
	assert.Contains(t, got, "\n\n", "blank line kept")
	sameYAML(t, src, got)
}

func TestFmtYAMLDocuments(t *testing.T) {
	const src = "a: 1\n---\n- x\n- y\n"
	got := fmtYAML(t, 80, src)
	assert.Equal(t, "{a: 1}\n---\n[x, y]", got)
	sameYAML(t, src, got)
}

func TestFmtYAMLError(t *testing.T) {
	_, err := boxfmt.FmtYAML(boxfmt.DefaultOptions(), "a: [1, 2")
	assert.Error(t, err)
}
