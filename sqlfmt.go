package boxfmt

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/cockroachdb-parser/pkg/sql/parser"
	"github.com/cockroachdb/cockroachdb-parser/pkg/sql/sem/tree"
	"github.com/pkg/errors"

	"github.com/mjibson/boxfmt/pretty"
	"github.com/mjibson/boxfmt/trivia"
)

const sqlComment = "--"

// FmtSQL formats the statements in stmts. Line comments between
// statements are kept and statements are separated by a blank line.
func FmtSQL(opts Options, stmts []string) (string, error) {
	f := sqlFormatter{
		p:    pretty.NewPrinter(opts.config()),
		opts: opts,
	}
	for _, stmt := range stmts {
		if err := f.source(stmt); err != nil {
			return "", err
		}
	}
	f.flush()
	return strings.TrimRightFunc(f.p.Eof(), unicode.IsSpace), nil
}

type sqlFormatter struct {
	p       *pretty.Printer
	opts    Options
	pending []trivia.Comment
	started bool
}

func (f *sqlFormatter) source(stmt string) error {
	for {
		items, rest := trivia.Scan(stmt, sqlComment)
		f.pending = append(f.pending, items...)
		stmt = rest
		if strings.TrimSpace(stmt) == "" {
			return nil
		}
		// Split by semicolons
		next := stmt
		if pos, _ := parser.SplitFirstStatement(stmt); pos > 0 {
			next = stmt[:pos]
			stmt = stmt[pos:]
		} else {
			stmt = ""
		}
		allParsed, err := parser.Parse(next)
		if err != nil {
			return errors.Wrapf(err, "parse %q", abbrev(next))
		}
		for _, parsed := range allParsed {
			f.startLine()
			f.statement(parsed.AST)
			f.p.Text(";")
		}
		c, rest, ok := trivia.SplitTrailing(stmt, sqlComment)
		if ok {
			f.p.Nbsp()
			f.p.Text(c.String())
		}
		stmt = rest
	}
}

// startLine moves to the line of the next statement and writes the
// comments collected before it.
func (f *sqlFormatter) startLine() {
	items := f.pending
	f.pending = nil
	if f.started {
		f.p.BreakHard()
		items = append([]trivia.Comment{trivia.Blank()}, items...)
	} else {
		for len(items) > 0 && items[0].Blank {
			items = items[1:]
		}
		f.started = true
	}
	trivia.Emit(f.p, items, f.opts.Trivia)
}

func (f *sqlFormatter) flush() {
	f.pending = trivia.TrimBlank(f.pending)
	if len(f.pending) > 0 {
		f.startLine()
	}
}

func abbrev(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}

func (f *sqlFormatter) kw(s string) {
	f.p.Text(f.opts.keyword(s))
}

func (f *sqlFormatter) statement(stmt tree.Statement) {
	switch t := stmt.(type) {
	case *tree.Select:
		f.selectStmt(t)
	case *tree.ParenSelect:
		f.parenSelect(t)
	default:
		f.p.Text(tree.AsString(stmt))
	}
}

// selectStmt writes each clause as a list that breaks on its own, inside a
// group that puts every clause on its own line when the statement does
// not fit.
func (f *sqlFormatter) selectStmt(s *tree.Select) {
	if len(s.Locking) > 0 {
		f.p.Text(tree.AsString(s))
		return
	}
	f.p.CBox(0)
	if s.With != nil {
		f.p.Text(tree.AsString(s.With))
		f.p.BreakSpace()
	}
	f.selectBody(s.Select)
	if len(s.OrderBy) > 0 {
		f.p.BreakSpace()
		f.list("ORDER BY", len(s.OrderBy), func(i int) {
			f.p.Text(tree.AsString(s.OrderBy[i]))
		})
	}
	if s.Limit != nil {
		f.limit(s.Limit)
	}
	f.p.GroupEnd()
}

func (f *sqlFormatter) selectBody(stmt tree.SelectStatement) {
	switch t := stmt.(type) {
	case *tree.SelectClause:
		f.selectClause(t)
	case *tree.ParenSelect:
		f.parenSelect(t)
	case *tree.UnionClause:
		f.selectStmt(t.Left)
		f.p.BreakSpace()
		op := t.Type.String()
		if t.All {
			op += " ALL"
		}
		f.kw(op)
		f.p.BreakSpace()
		f.selectStmt(t.Right)
	default:
		f.p.Text(tree.AsString(stmt))
	}
}

func (f *sqlFormatter) parenSelect(ps *tree.ParenSelect) {
	f.p.CBox(0)
	f.p.Text("(")
	f.p.Indent(f.p.Unit())
	f.p.BreakZero()
	f.selectStmt(ps.Select)
	f.p.Outdent()
	f.p.BreakZero()
	f.p.Text(")")
	f.p.GroupEnd()
}

func (f *sqlFormatter) selectClause(sc *tree.SelectClause) {
	if sc.TableSelect || len(sc.DistinctOn) > 0 || len(sc.Window) > 0 || sc.From.AsOf.Expr != nil {
		f.p.Text(tree.AsString(sc))
		return
	}
	kw := "SELECT"
	if sc.Distinct {
		kw += " DISTINCT"
	}
	f.list(kw, len(sc.Exprs), func(i int) {
		f.p.Text(tree.AsString(&sc.Exprs[i]))
	})
	if len(sc.From.Tables) > 0 {
		f.p.BreakSpace()
		f.list("FROM", len(sc.From.Tables), func(i int) {
			f.tableExpr(sc.From.Tables[i])
		})
	}
	if sc.Where != nil {
		f.p.BreakSpace()
		f.predicate(sc.Where.Type, sc.Where.Expr)
	}
	if len(sc.GroupBy) > 0 {
		f.p.BreakSpace()
		f.list("GROUP BY", len(sc.GroupBy), func(i int) {
			f.p.Text(tree.AsString(sc.GroupBy[i]))
		})
	}
	if sc.Having != nil {
		f.p.BreakSpace()
		f.predicate(sc.Having.Type, sc.Having.Expr)
	}
}

// list writes a keyword followed by a comma separated list indented one
// level when it breaks.
func (f *sqlFormatter) list(kw string, n int, item func(i int)) {
	f.p.GroupStartOffset(f.opts.listBreaks(), f.p.Unit())
	f.kw(kw)
	f.p.BreakSpace()
	for i := 0; i < n; i++ {
		if i > 0 {
			f.p.Text(",")
			f.p.BreakSpace()
		}
		item(i)
	}
	f.p.GroupEnd()
}

// predicate breaks a chain of ANDs, or else of ORs, before each operator.
func (f *sqlFormatter) predicate(kw string, e tree.Expr) {
	op, terms := "AND", flatten(e, "AND")
	if len(terms) == 1 {
		op, terms = "OR", flatten(e, "OR")
	}
	f.p.CBox(f.p.Unit())
	f.kw(kw)
	f.p.Nbsp()
	for i, t := range terms {
		if i > 0 {
			f.p.BreakSpace()
			f.kw(op)
			f.p.Nbsp()
		}
		f.p.Text(tree.AsString(t))
	}
	f.p.GroupEnd()
}

func flatten(e tree.Expr, op string) []tree.Expr {
	switch t := e.(type) {
	case *tree.AndExpr:
		if op == "AND" {
			return append(flatten(t.Left, op), flatten(t.Right, op)...)
		}
	case *tree.OrExpr:
		if op == "OR" {
			return append(flatten(t.Left, op), flatten(t.Right, op)...)
		}
	}
	return []tree.Expr{e}
}

func (f *sqlFormatter) tableExpr(te tree.TableExpr) {
	if ate, ok := te.(*tree.AliasedTableExpr); ok && !ate.Lateral && !ate.Ordinality && ate.IndexFlags == nil {
		if sq, ok := ate.Expr.(*tree.Subquery); ok {
			if ps, ok := sq.Select.(*tree.ParenSelect); ok {
				f.parenSelect(ps)
				if ate.As.Alias != "" {
					f.p.Nbsp()
					f.kw("AS")
					f.p.Nbsp()
					f.p.Text(tree.AsString(&ate.As))
				}
				return
			}
		}
	}
	f.p.Text(tree.AsString(te))
}

func (f *sqlFormatter) limit(l *tree.Limit) {
	if l.Count != nil || l.LimitAll {
		f.p.BreakSpace()
		f.kw("LIMIT")
		f.p.Nbsp()
		if l.LimitAll {
			f.kw("ALL")
		} else {
			f.p.Text(tree.AsString(l.Count))
		}
	}
	if l.Offset != nil {
		f.p.BreakSpace()
		f.kw("OFFSET")
		f.p.Nbsp()
		f.p.Text(tree.AsString(l.Offset))
	}
}
