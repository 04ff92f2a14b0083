package boxfmt

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mjibson/boxfmt/pretty"
	"github.com/mjibson/boxfmt/trivia"
)

const yamlComment = "#"

// FmtYAML formats every document in src in flow style, keeping comments
// on their own lines or after the entry they follow.
func FmtYAML(opts Options, src string) (string, error) {
	dec := yaml.NewDecoder(strings.NewReader(src))
	y := yamlFormatter{
		p:      pretty.NewPrinter(opts.config()),
		opts:   opts,
		trivia: trivia.NewTable(),
		lines:  strings.Split(src, "\n"),
	}
	for i := 0; ; i++ {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return "", errors.Wrapf(err, "parse yaml document %d", i+1)
		}
		if i > 0 {
			y.p.BreakHard()
			y.p.Text("---")
			y.p.BreakHard()
		}
		y.collect(&doc)
		y.document(&doc)
	}
	return strings.TrimRightFunc(y.p.Eof(), unicode.IsSpace), nil
}

type yamlFormatter struct {
	p      *pretty.Printer
	opts   Options
	trivia *trivia.Table
	// lines of the source, for what the decoder does not keep.
	lines []string
}

// span covers n from its own position to the position of its last
// descendant. A collection starts where its first entry does, so the end
// keeps the two apart.
func span(n *yaml.Node) trivia.Span {
	last := n
	for len(last.Content) > 0 {
		last = last.Content[len(last.Content)-1]
	}
	return trivia.Span{Start: pos(n), End: pos(last)}
}

func pos(n *yaml.Node) int { return n.Line<<16 | n.Column }

// endLine is the last source line taken by n and its foot comments.
func endLine(n *yaml.Node) int {
	end := n.Line
	if n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		end += strings.Count(strings.TrimSuffix(n.Value, "\n"), "\n") + 1
	}
	for _, c := range n.Content {
		if l := endLine(c); l > end {
			end = l
		}
	}
	if n.FootComment != "" {
		end += strings.Count(n.FootComment, "\n") + 1
	}
	return end
}

func commentLines(s string) []trivia.Comment {
	if s == "" {
		return nil
	}
	var out []trivia.Comment
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			out = append(out, trivia.Blank())
			continue
		}
		out = append(out, trivia.Comment{
			Prefix: yamlComment,
			Text:   strings.TrimPrefix(l, yamlComment),
		})
	}
	return out
}

// collect records head and foot comments, and blank lines between the
// entries of block collections.
func (y *yamlFormatter) collect(n *yaml.Node) {
	s := span(n)
	y.trivia.AddLeading(s, commentLines(n.HeadComment)...)
	step := 1
	if n.Kind == yaml.MappingNode {
		step = 2
	}
	for i := 0; i < len(n.Content); i += step {
		head := n.Content[i]
		if i > 0 && n.Style&yaml.FlowStyle == 0 {
			start := head.Line - strings.Count(head.HeadComment, "\n")
			if head.HeadComment != "" {
				start--
			}
			if start > endLine(n.Content[i-1])+1 {
				y.trivia.AddLeading(span(head), trivia.Blank())
			}
		}
		for _, c := range n.Content[i : i+step] {
			y.collect(c)
		}
	}
	y.trivia.AddTrailing(s, commentLines(n.FootComment)...)
}

func (y *yamlFormatter) document(doc *yaml.Node) {
	lead := y.trivia.TakeLeading(span(doc))
	var root *yaml.Node
	if len(doc.Content) > 0 {
		root = doc.Content[0]
		lead = append(lead, y.trivia.TakeLeading(span(root))...)
	}
	trivia.Emit(y.p, trivia.TrimBlank(lead), y.opts.Trivia)
	var foot []trivia.Comment
	if root != nil {
		y.node(root)
		if root.LineComment != "" {
			y.p.Nbsp()
			y.p.Text(root.LineComment)
		}
		foot = y.trivia.TakeTrailing(span(root))
	}
	foot = append(foot, y.trivia.TakeTrailing(span(doc))...)
	y.footer(foot)
}

// footer writes comments on the lines after the current one.
func (y *yamlFormatter) footer(items []trivia.Comment) bool {
	items = y.opts.Trivia.Normalize(trivia.TrimBlank(items))
	for _, c := range items {
		y.p.BreakHard()
		if !c.Blank {
			y.p.Text(c.String())
		}
	}
	return len(items) > 0
}

func (y *yamlFormatter) node(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			y.node(c)
		}
	case yaml.MappingNode:
		y.collection(n, "{", "}", 2, func(i int) {
			key, val := n.Content[2*i], n.Content[2*i+1]
			y.node(key)
			y.p.Text(":")
			y.p.Nbsp()
			y.node(val)
		})
	case yaml.SequenceNode:
		y.collection(n, "[", "]", 1, func(i int) {
			y.node(n.Content[i])
		})
	case yaml.AliasNode:
		y.p.Text("*" + n.Value)
	default:
		y.p.Text(y.decorate(n, scalar(n)))
	}
}

// collection writes the entries of n, step nodes each, between open and
// close. Comments force it onto multiple lines.
func (y *yamlFormatter) collection(n *yaml.Node, open, close string, step int, entry func(i int)) {
	count := len(n.Content) / step
	y.p.CBox(0)
	y.p.Text(y.decorate(n, open))
	if count == 0 {
		y.p.Text(close)
		y.p.GroupEnd()
		return
	}
	y.p.Indent(y.p.Unit())
	y.p.BreakZero()
	for i := 0; i < count; i++ {
		nodes := n.Content[i*step : (i+1)*step]
		var lead, foot []trivia.Comment
		for _, c := range nodes {
			lead = append(lead, y.trivia.TakeLeading(span(c))...)
		}
		trivia.Emit(y.p, lead, y.opts.Trivia)
		entry(i)
		last := i == count-1
		if !last {
			y.p.Text(",")
		}
		hard := false
		for _, c := range nodes {
			if c.LineComment != "" {
				y.p.Nbsp()
				y.p.Text(c.LineComment)
				hard = true
				break
			}
		}
		for _, c := range nodes {
			foot = append(foot, y.trivia.TakeTrailing(span(c))...)
		}
		if y.footer(foot) {
			hard = true
		}
		switch {
		case last:
			y.p.Outdent()
			if hard {
				y.p.BreakHard()
			} else {
				y.p.BreakZero()
			}
			y.p.Text(close)
		case hard:
			y.p.BreakHard()
		default:
			y.p.BreakSpace()
		}
	}
	y.p.GroupEnd()
}

func (y *yamlFormatter) decorate(n *yaml.Node, s string) string {
	if n.Style&yaml.TaggedStyle != 0 && n.Tag != "" {
		s = n.Tag + " " + s
	} else if n.Kind == yaml.ScalarNode && y.nonSpecific(n) {
		s = "! " + s
	}
	if n.Anchor != "" {
		s = "&" + n.Anchor + " " + s
	}
	return s
}

// nonSpecific reports whether the source gives n the "!" tag. The decoder
// resolves such a scalar as if it were untagged and drops the tag, but
// other readers take it as a string.
func (y *yamlFormatter) nonSpecific(n *yaml.Node) bool {
	if n.Line < 1 || n.Line > len(y.lines) || n.Column < 1 {
		return false
	}
	line := []rune(y.lines[n.Line-1])
	if n.Column-1 >= len(line) {
		return false
	}
	s := string(line[n.Column-1:])
	if n.Anchor != "" {
		s = strings.TrimPrefix(s, "&"+n.Anchor)
		s = strings.TrimLeft(s, " \t")
	}
	return s == "!" || strings.HasPrefix(s, "! ") || strings.HasPrefix(s, "!\t")
}

// scalar renders n so that it reads back the same inside a flow
// collection.
func scalar(n *yaml.Node) string {
	v := n.Value
	switch {
	case n.Style&yaml.SingleQuotedStyle != 0:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case n.Style&(yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		return strconv.Quote(v)
	case v == "" && n.Tag == "!!null":
		return "null"
	case v == "",
		strings.ContainsAny(v, ",[]{}\n"),
		strings.Contains(v, ": "),
		strings.Contains(v, " #"),
		strings.HasSuffix(v, ":"):
		return strconv.Quote(v)
	}
	return v
}
