package pretty

import "fmt"

// SizeInfinity is the width given to hard breaks and to buffered entries
// already known not to fit on the current line.
const SizeInfinity = 0xffff

// MaxMargin is the widest margin a Printer accepts. A hard break must never
// fit on a line.
const MaxMargin = SizeInfinity - 1

// Breaks is the breaking policy of a group.
type Breaks int

const (
	// Consistent groups break at every one of their own break points, or
	// at none.
	Consistent Breaks = iota
	// Inconsistent groups break only where the next chunk would not fit.
	Inconsistent
)

func (b Breaks) String() string {
	switch b {
	case Consistent:
		return "consistent"
	case Inconsistent:
		return "inconsistent"
	}
	return fmt.Sprintf("Breaks(%d)", int(b))
}

// BreakKind distinguishes the three kinds of break point.
type BreakKind int

const (
	BreakSpace BreakKind = iota
	BreakZero
	BreakHard
)

func (k BreakKind) String() string {
	switch k {
	case BreakSpace:
		return "space"
	case BreakZero:
		return "zero"
	case BreakHard:
		return "hard"
	}
	return fmt.Sprintf("BreakKind(%d)", int(k))
}

// Token is a single layout instruction.
type Token interface {
	isToken()
}

func (StringToken) isToken() {}
func (BreakToken) isToken()  {}
func (BeginToken) isToken()  {}
func (EndToken) isToken()    {}
func (IndentToken) isToken() {}

// StringToken is atomic text. It is never split.
type StringToken string

// BreakToken is an optional line break.
type BreakToken struct {
	Kind BreakKind
	// Blank is the number of spaces written when the break stays flat.
	Blank int
	// Offset is added to the group indentation when the break is taken.
	Offset int
	// PreBreak is written only when the break is taken, before the newline.
	PreBreak string
}

func (b BreakToken) width() int {
	if b.Kind == BreakHard {
		return SizeInfinity
	}
	return b.Blank
}

// BeginToken opens a group.
type BeginToken struct {
	Breaks Breaks
	// Offset is the indentation of the group's broken lines relative to
	// its base.
	Offset int
	// Align makes the base the column at which the group starts instead of
	// the enclosing indentation.
	Align bool
}

// EndToken closes the innermost open group.
type EndToken struct{}

// IndentToken changes the indentation of the enclosing group for the
// breaks that follow it.
type IndentToken struct {
	Delta int
}

func (t StringToken) String() string { return fmt.Sprintf("%q", string(t)) }

func (b BreakToken) String() string {
	s := fmt.Sprintf("break(%s", b.Kind)
	if b.Kind != BreakHard && b.Blank != 1 {
		s += fmt.Sprintf(" %d", b.Blank)
	}
	if b.Offset != 0 {
		s += fmt.Sprintf(" %+d", b.Offset)
	}
	if b.PreBreak != "" {
		s += fmt.Sprintf(" %q", b.PreBreak)
	}
	return s + ")"
}

func (b BeginToken) String() string {
	s := fmt.Sprintf("begin(%s", b.Breaks)
	if b.Offset != 0 {
		s += fmt.Sprintf(" %+d", b.Offset)
	}
	if b.Align {
		s += " align"
	}
	return s + ")"
}

func (EndToken) String() string { return "end" }

func (t IndentToken) String() string { return fmt.Sprintf("indent(%+d)", t.Delta) }
