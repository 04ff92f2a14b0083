package pretty

// Text emits atomic text. It is never split, even when wider than the
// margin.
func (p *Printer) Text(s string) {
	p.check()
	p.scanString(s)
}

// Nbsp emits a space that never breaks.
func (p *Printer) Nbsp() { p.Text(" ") }

// BreakSpace emits a break that renders as one space when flat.
func (p *Printer) BreakSpace() { p.BreakOffset(1, 0) }

// BreakZero emits a break that renders as nothing when flat.
func (p *Printer) BreakZero() { p.BreakOffset(0, 0) }

// BreakOffset emits a break that renders as n spaces when flat and as a
// newline indented off columns past the group indentation when taken.
func (p *Printer) BreakOffset(n, off int) {
	p.check()
	if n < 0 {
		contractf("negative break width %d", n)
	}
	kind := BreakSpace
	if n == 0 {
		kind = BreakZero
	}
	p.scanBreak(BreakToken{Kind: kind, Blank: n, Offset: off})
}

// BreakHard emits a newline regardless of fit. Every enclosing group is
// broken.
func (p *Printer) BreakHard() {
	p.check()
	p.scanBreak(BreakToken{Kind: BreakHard})
}

// TrailingComma emits a zero break that writes a comma before its newline
// when taken. It belongs after the last element of a list.
func (p *Printer) TrailingComma() {
	p.check()
	p.scanBreak(BreakToken{Kind: BreakZero, PreBreak: ","})
}

// GroupStart opens a group whose broken lines use the enclosing
// indentation.
func (p *Printer) GroupStart(b Breaks) { p.GroupStartOffset(b, 0) }

// GroupStartOffset opens a group whose broken lines are indented off
// columns past the enclosing indentation.
func (p *Printer) GroupStartOffset(b Breaks, off int) {
	p.begin(BeginToken{Breaks: b, Offset: off})
}

// AlignStart opens a group whose broken lines line up with the column at
// which the group starts.
func (p *Printer) AlignStart(b Breaks) {
	p.begin(BeginToken{Breaks: b, Align: true})
}

// CBox opens a consistent group indented off columns.
func (p *Printer) CBox(off int) { p.GroupStartOffset(Consistent, off) }

// IBox opens an inconsistent group indented off columns.
func (p *Printer) IBox(off int) { p.GroupStartOffset(Inconsistent, off) }

func (p *Printer) begin(b BeginToken) {
	p.check()
	if b.Breaks != Consistent && b.Breaks != Inconsistent {
		contractf("unknown breaking mode %v", b.Breaks)
	}
	p.scopes = append(p.scopes, nil)
	p.scanBegin(b)
}

// GroupEnd closes the innermost open group. Indentation pushed inside the
// group ends with it.
func (p *Printer) GroupEnd() {
	p.check()
	if len(p.scopes) == 1 {
		contractf("group end without group start")
	}
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.scanEnd()
}

// Indent adds delta columns to the indentation used by the following
// breaks of the innermost group.
func (p *Printer) Indent(delta int) {
	p.check()
	if delta < 0 {
		contractf("negative indent %d", delta)
	}
	s := &p.scopes[len(p.scopes)-1]
	*s = append(*s, delta)
	p.scanIndent(IndentToken{Delta: delta})
}

// Outdent undoes the last Indent of the innermost group.
func (p *Printer) Outdent() {
	p.check()
	s := &p.scopes[len(p.scopes)-1]
	if len(*s) == 0 {
		contractf("outdent without indent")
	}
	delta := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	p.scanIndent(IndentToken{Delta: -delta})
}

// Emit writes a raw token. It is the form used when replaying a token
// stream; the helpers above are preferred when building one.
func (p *Printer) Emit(tok Token) {
	switch t := tok.(type) {
	case StringToken:
		p.Text(string(t))
	case BreakToken:
		p.check()
		if t.Kind == BreakHard {
			t.Blank = 0
		} else if t.Blank < 0 {
			contractf("negative break width %d", t.Blank)
		}
		p.scanBreak(t)
	case BeginToken:
		p.begin(t)
	case EndToken:
		p.GroupEnd()
	case IndentToken:
		if t.Delta >= 0 {
			p.Indent(t.Delta)
			return
		}
		s := p.scopes[len(p.scopes)-1]
		if len(s) == 0 || s[len(s)-1] != -t.Delta {
			contractf("indent %+d does not undo the last indent", t.Delta)
		}
		p.Outdent()
	default:
		contractf("unknown token %T", tok)
	}
}
