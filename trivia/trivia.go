// Package trivia keeps the comments and blank lines of a source file so
// that a visitor can re-emit them around the nodes they belong to.
package trivia

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/mjibson/boxfmt/pretty"
)

// Span identifies a source node, typically by its byte offsets or by its
// line and column.
type Span struct {
	Start, End int
}

// Comment is either a comment line or, if Blank is set, a blank line.
type Comment struct {
	// Prefix is the comment marker, like "--" or "#".
	Prefix string
	Text   string
	Blank  bool
}

func Blank() Comment { return Comment{Blank: true} }

func (c Comment) String() string {
	if c.Blank {
		return ""
	}
	return c.Prefix + c.Text
}

// Table maps spans to the trivia before and after them.
type Table struct {
	leading  map[Span][]Comment
	trailing map[Span][]Comment
}

func NewTable() *Table {
	return &Table{
		leading:  make(map[Span][]Comment),
		trailing: make(map[Span][]Comment),
	}
}

func (t *Table) AddLeading(s Span, c ...Comment) {
	t.leading[s] = append(t.leading[s], c...)
}

func (t *Table) AddTrailing(s Span, c ...Comment) {
	t.trailing[s] = append(t.trailing[s], c...)
}

func (t *Table) Leading(s Span) []Comment { return t.leading[s] }

func (t *Table) Trailing(s Span) []Comment { return t.trailing[s] }

// TakeLeading returns the leading trivia of s and forgets it, so that it
// is emitted once even if the node is visited again.
func (t *Table) TakeLeading(s Span) []Comment {
	c := t.leading[s]
	delete(t.leading, s)
	return c
}

func (t *Table) TakeTrailing(s Span) []Comment {
	c := t.trailing[s]
	delete(t.trailing, s)
	return c
}

// Len is the number of spans that still have trivia attached.
func (t *Table) Len() int { return len(t.leading) + len(t.trailing) }

// Policy decides how trivia is re-emitted.
type Policy struct {
	// MaxBlankLines is the longest run of blank lines kept.
	MaxBlankLines int
	// WrapWidth re-wraps comment text to this many columns when > 0.
	WrapWidth int
}

func DefaultPolicy() Policy {
	return Policy{MaxBlankLines: 1}
}

// Normalize collapses runs of blank lines and re-wraps long comments.
func (pol Policy) Normalize(items []Comment) []Comment {
	var out []Comment
	run := 0
	for _, c := range items {
		if c.Blank {
			run++
			if run <= pol.MaxBlankLines {
				out = append(out, c)
			}
			continue
		}
		run = 0
		out = append(out, pol.wrap(c)...)
	}
	return out
}

func (pol Policy) wrap(c Comment) []Comment {
	body := strings.TrimSpace(c.Text)
	limit := pol.WrapWidth - len(c.Prefix) - 1
	if pol.WrapWidth <= 0 || limit < 1 || len(c.Prefix)+len(c.Text) <= pol.WrapWidth || body == "" {
		return []Comment{c}
	}
	var out []Comment
	for _, l := range strings.Split(wordwrap.String(body, limit), "\n") {
		out = append(out, Comment{Prefix: c.Prefix, Text: " " + strings.TrimSpace(l)})
	}
	return out
}

// TrimBlank drops blank lines at both ends of items.
func TrimBlank(items []Comment) []Comment {
	for len(items) > 0 && items[0].Blank {
		items = items[1:]
	}
	for len(items) > 0 && items[len(items)-1].Blank {
		items = items[:len(items)-1]
	}
	return items
}

// Emit writes items to p, each on its own line. It must be called at the
// start of a line: a comment is followed by a hard break, and a blank line
// is an extra hard break.
func Emit(p *pretty.Printer, items []Comment, pol Policy) {
	for _, c := range pol.Normalize(items) {
		if !c.Blank {
			p.Text(c.String())
		}
		p.BreakHard()
	}
}
