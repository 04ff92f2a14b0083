package pretty

import "fmt"

// Doc is a layout document. It is lowered onto a Printer by Emit.
type Doc interface {
	isDoc()
}

func (concat) isDoc()        {}
func (group) isDoc()         {}
func (nest) isDoc()          {}
func (text) isDoc()          {}
func (_nil) isDoc()          {}
func (line) isDoc()          {}
func (softbreak) isDoc()     {}
func (hardline) isDoc()      {}
func (trailingComma) isDoc() {}

type text string

func Text(s string) Doc {
	return text(s)
}

// Line is a break rendered as a space when its group fits.
type line struct{}

var Line line

// SoftBreak is a break rendered as nothing when its group fits.
type softbreak struct{}

var SoftBreak softbreak

// HardLine always breaks and forces every enclosing group to break.
type hardline struct{}

var HardLine hardline

// TrailingComma renders as "," only when its group breaks.
type trailingComma struct{}

var TrailingComma trailingComma

type _nil struct{}

var Nil _nil

// nest indents the breaks of d by n columns, or by n indentation units
// when units is set.
type nest struct {
	n     int
	units bool
	d     Doc
}

func Nest(n int, d Doc) Doc {
	return nest{n: n, d: d}
}

// NestT indents d by one indentation unit of the rendering Config.
func NestT(d Doc) Doc {
	return nest{n: 1, units: true, d: d}
}

type group struct {
	breaks Breaks
	align  bool
	d      Doc
}

// Group lays d out flat if it fits and otherwise breaks all of its own
// lines.
func Group(d Doc) Doc {
	return group{breaks: Consistent, d: d}
}

// Fill lays d out flat if it fits and otherwise breaks only the lines
// that would overflow.
func Fill(d Doc) Doc {
	return group{breaks: Inconsistent, d: d}
}

// AlignGroup is Group with broken lines aligned to its starting column.
func AlignGroup(d Doc) Doc {
	return group{breaks: Consistent, align: true, d: d}
}

type concat struct {
	a, b Doc
}

func Concat(a, b Doc) Doc {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	if a == Nil {
		return b
	}
	if b == Nil {
		return a
	}
	return concat{a, b}
}

func Join(s string, d ...Doc) Doc {
	switch len(d) {
	case 0:
		return Nil
	case 1:
		return d[0]
	default:
		return ConcatLine(Concat(d[0], Text(s)), Join(s, d[1:]...))
	}
}

// ConcatLine puts a Line between a and b.
func ConcatLine(a, b Doc) Doc {
	return Concat(
		a,
		Concat(
			Line,
			b,
		),
	)
}

func Fold(f func(a, b Doc) Doc, d ...Doc) Doc {
	switch len(d) {
	case 0:
		return Nil
	case 1:
		return d[0]
	default:
		return f(d[0], Fold(f, d[1:]...))
	}
}

// Bracket puts x between l and r, indented on its own lines when the
// whole does not fit.
func Bracket(l string, x Doc, r string) Doc {
	return Group(Fold(Concat,
		Text(l),
		NestT(Concat(SoftBreak, x)),
		SoftBreak,
		Text(r),
	))
}

// NestUnder puts b after a, or indented under it when the whole does not
// fit.
func NestUnder(a, b Doc) Doc {
	return Group(Concat(
		a,
		NestT(Concat(Line, b)),
	))
}

// Emit lowers d onto p.
func Emit(p *Printer, d Doc) {
	e := emitter{p: p}
	e.emit(d)
}

type emitter struct {
	p    *Printer
	done <-chan struct{}
	err  error
}

func (e *emitter) canceled() bool {
	if e.err != nil {
		return true
	}
	select {
	case <-e.done:
		e.err = errCanceled
		return true
	default:
		return false
	}
}

func (e *emitter) emit(d Doc) {
	if e.canceled() {
		return
	}
	switch t := d.(type) {
	case nil, _nil:
	case text:
		e.p.Text(string(t))
	case line:
		e.p.BreakSpace()
	case softbreak:
		e.p.BreakZero()
	case hardline:
		e.p.BreakHard()
	case trailingComma:
		e.p.TrailingComma()
	case concat:
		e.emit(t.a)
		e.emit(t.b)
	case nest:
		n := t.n
		if t.units {
			n *= e.p.Unit()
		}
		e.p.Indent(n)
		e.emit(t.d)
		e.p.Outdent()
	case group:
		if t.align {
			e.p.AlignStart(t.breaks)
		} else {
			e.p.GroupStart(t.breaks)
		}
		e.emit(t.d)
		e.p.GroupEnd()
	default:
		panic(fmt.Errorf("unknown type: %T", d))
	}
}
