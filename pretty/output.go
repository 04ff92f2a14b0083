package pretty

import "strings"

// output is the sink for resolved tokens. Indentation and flat-break
// blanks are owed rather than written, and only materialised in front of
// the next text, so no line ever ends in whitespace.
type output struct {
	sb      strings.Builder
	margin  int
	unit    int
	useTabs bool
	width   func(string) int

	// space is the number of columns left on the current line.
	space int
	// indent is owed leading indentation, blank is owed inline blanks.
	indent, blank int
}

func newOutput(cfg Config) output {
	return output{
		margin:  cfg.Margin,
		unit:    cfg.IndentUnit,
		useTabs: cfg.UseTabs,
		width:   cfg.widthFunc(),
		space:   cfg.Margin,
	}
}

func (o *output) column() int { return o.margin - o.space }

func (o *output) text(s string, w int) {
	if s == "" {
		return
	}
	o.flush()
	o.sb.WriteString(s)
	o.space -= w
}

func (o *output) spaces(n int) {
	o.blank += n
	o.space -= n
}

func (o *output) newline(indent int) {
	if indent < 0 {
		contractf("negative indentation %d", indent)
	}
	o.sb.WriteByte('\n')
	o.indent = indent
	o.blank = 0
	o.space = o.margin - indent
}

func (o *output) flush() {
	if o.indent > 0 {
		if o.useTabs {
			o.sb.WriteString(strings.Repeat("\t", o.indent/o.unit))
			o.sb.WriteString(strings.Repeat(" ", o.indent%o.unit))
		} else {
			o.sb.WriteString(strings.Repeat(" ", o.indent))
		}
		o.indent = 0
	}
	if o.blank > 0 {
		o.sb.WriteString(strings.Repeat(" ", o.blank))
		o.blank = 0
	}
}

func (o *output) String() string { return o.sb.String() }
