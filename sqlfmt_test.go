package boxfmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjibson/boxfmt"
)

func sqlOpts(width int) boxfmt.Options {
	opts := boxfmt.DefaultOptions()
	opts.Pretty.Margin = width
	return opts
}

func fmtSQL(t *testing.T, opts boxfmt.Options, stmts ...string) string {
	t.Helper()
	got, err := boxfmt.FmtSQL(opts, stmts)
	require.NoError(t, err)
	return got
}

func TestFmtSQL(t *testing.T) {
	for _, tc := range []struct {
		name  string
		width int
		sql   string
		want  string
	}{
		{
			name:  "fits",
			width: 80,
			sql:   "select a, b from t where a = 1 and b = 2",
			want:  "SELECT a, b FROM t WHERE a = 1 AND b = 2;",
		},
		{
			name:  "clauses",
			width: 20,
			sql:   "SELECT a, b FROM t WHERE a = 1 AND b = 2",
			want:  "SELECT a, b\nFROM t\nWHERE a = 1\n    AND b = 2;",
		},
		{
			name:  "fill select list",
			width: 20,
			sql:   "SELECT aaaa, bbbb, cccc FROM t",
			want:  "SELECT aaaa, bbbb,\n    cccc\nFROM t;",
		},
		{
			name:  "subquery",
			width: 30,
			sql:   "SELECT x FROM (SELECT y FROM u) AS s",
			want:  "SELECT x\nFROM (SELECT y FROM u) AS s;",
		},
		{
			name:  "union",
			width: 80,
			sql:   "SELECT 1 UNION ALL SELECT 2",
			want:  "SELECT 1 UNION ALL SELECT 2;",
		},
		{
			name:  "limit",
			width: 80,
			sql:   "SELECT a FROM t ORDER BY a LIMIT 3 OFFSET 1",
			want:  "SELECT a FROM t ORDER BY a LIMIT 3 OFFSET 1;",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fmtSQL(t, sqlOpts(tc.width), tc.sql))
		})
	}
}

func TestFmtSQLExpanded(t *testing.T) {
	opts := sqlOpts(20)
	opts.Expanded = true
	assert.Equal(t,
		"SELECT\n    aaaa,\n    bbbb,\n    cccc\nFROM t;",
		fmtSQL(t, opts, "SELECT aaaa, bbbb, cccc FROM t"))
}

func TestFmtSQLComments(t *testing.T) {
	const src = "\n-- first\nSELECT 1;\n\n\n-- second\nSELECT 2; -- trailing\n"
	assert.Equal(t,
		"-- first\nSELECT 1;\n\n-- second\nSELECT 2; -- trailing",
		fmtSQL(t, sqlOpts(80), src))

	opts := sqlOpts(80)
	opts.Trivia.MaxBlankLines = 2
	assert.Equal(t,
		"SELECT 1;\n\n\nSELECT 2;",
		fmtSQL(t, opts, "SELECT 1;\n\n\n\n\nSELECT 2;"))
}

func TestFmtSQLMultipleSources(t *testing.T) {
	got := fmtSQL(t, sqlOpts(80), "SELECT 1", "SELECT 2; SELECT 3;", "-- done")
	assert.Equal(t, "SELECT 1;\n\nSELECT 2;\n\nSELECT 3;\n\n-- done", got)
}

func TestFmtSQLCase(t *testing.T) {
	opts := sqlOpts(80)
	lower, err := boxfmt.CaseMode("lower")
	require.NoError(t, err)
	opts.Case = lower
	assert.Equal(t, "select a from t where a = 1;", fmtSQL(t, opts, "SELECT a FROM t WHERE a = 1"))
}

func TestFmtSQLColor(t *testing.T) {
	opts := sqlOpts(80)
	opts.Color = true
	got := fmtSQL(t, opts, "SELECT 1")
	assert.Equal(t, "\x1b[34mSELECT\x1b[0m 1;", got)
}

func TestFmtSQLOtherStatements(t *testing.T) {
	got := fmtSQL(t, sqlOpts(80), "insert into t values (1)")
	assert.Equal(t, "INSERT INTO t VALUES (1);", got)
}

func TestFmtSQLError(t *testing.T) {
	_, err := boxfmt.FmtSQL(sqlOpts(80), []string{"SELEC 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SELEC 1")
}

func TestFmtSQLWidth(t *testing.T) {
	const sql = `SELECT count(*) AS count, winner, counter FROM (SELECT winner, round(length) AS counter FROM players WHERE build = $1 AND hero = $2 AND region = $3) GROUP BY winner, counter`
	for _, width := range []int{40, 60, 80, 120} {
		got := fmtSQL(t, sqlOpts(width), sql)
		for _, line := range strings.Split(got, "\n") {
			assert.LessOrEqual(t, len(line), width, "width %d: %q", width, line)
		}
		again := fmtSQL(t, sqlOpts(width), got)
		assert.Equal(t, got, again, "width %d", width)
	}
}
