package pretty

// Printer lays out a stream of tokens within a margin. It is an online
// implementation of Oppen's algorithm: tokens are buffered only until the
// size of the group or break they belong to is known, and then flushed to
// the output, so memory is bounded by the content of the current line and
// the open nesting rather than by the length of the document.
//
// A Printer renders a single document and is not safe for concurrent use.
type Printer struct {
	cfg Config
	out output

	// buf holds tokens whose layout is not decided yet. A negative size is
	// pending and stores -rightTotal at the time the entry was pushed.
	buf ring[bufEntry]
	// scan holds the positions in buf of pending Begin and Break entries
	// of open groups.
	scan ring[int]
	// closed holds the positions of a closed group's Begin and last Break.
	// Text may follow the group on the same line, so they stay pending
	// until the next break.
	closed []int
	// leftTotal is the flat width of everything printed out of buf,
	// rightTotal of everything pushed into it.
	leftTotal, rightTotal int

	// frames is the print-side stack of groups being written.
	frames []frame
	// scopes is the emit-side stack of open groups, each holding the
	// indentation deltas pushed inside it.
	scopes [][]int

	stats Stats
	done  bool
}

type bufEntry struct {
	tok  Token
	size int
}

type frame struct {
	indent int
	breaks Breaks
	fits   bool
}

// Stats describes the resource use of a render.
type Stats struct {
	// Tokens is the number of tokens emitted.
	Tokens int
	// PeakBuffer is the largest number of tokens held in the lookahead
	// buffer at once.
	PeakBuffer int
	// PeakPending is the largest number of unresolved groups and breaks.
	PeakPending int
}

// NewPrinter returns a Printer for one render. Zero Margin and IndentUnit
// take their defaults.
func NewPrinter(cfg Config) *Printer {
	cfg = cfg.withDefaults()
	if cfg.Margin < 0 || cfg.Margin > MaxMargin || cfg.IndentUnit < 0 {
		contractf("invalid config: margin %d, indent unit %d", cfg.Margin, cfg.IndentUnit)
	}
	return &Printer{
		cfg:    cfg,
		out:    newOutput(cfg),
		frames: []frame{{breaks: Inconsistent}},
		scopes: [][]int{nil},
	}
}

func (p *Printer) Config() Config { return p.cfg }

// Unit returns the number of columns of one indentation level.
func (p *Printer) Unit() int { return p.cfg.IndentUnit }

func (p *Printer) Stats() Stats { return p.stats }

// Eof finishes the render and returns the formatted text. All groups must
// be closed.
func (p *Printer) Eof() string {
	p.check()
	if n := len(p.scopes) - 1; n > 0 {
		contractf("eof with %d open groups", n)
	}
	p.resolveClosed()
	// Only a break outside any group can still be open.
	for p.scan.Len() > 0 {
		p.resolve(p.scan.PopBack())
	}
	p.advanceLeft()
	p.done = true
	return p.out.String()
}

func (p *Printer) check() {
	if p.done {
		contractf("printer used after eof")
	}
	p.stats.Tokens++
}

func (p *Printer) push(e bufEntry) int {
	pos := p.buf.PushBack(e)
	if n := p.buf.Len(); n > p.stats.PeakBuffer {
		p.stats.PeakBuffer = n
	}
	return pos
}

func (p *Printer) pushPending(tok Token) {
	p.scan.PushBack(p.push(bufEntry{tok: tok, size: -p.rightTotal}))
	p.trackPending()
}

func (p *Printer) trackPending() {
	if n := p.scan.Len() + len(p.closed); n > p.stats.PeakPending {
		p.stats.PeakPending = n
	}
}

// idle reports whether no decision is pending. The buffer is empty then.
func (p *Printer) idle() bool { return p.scan.Len() == 0 && len(p.closed) == 0 }

func (p *Printer) close(pos int) {
	p.closed = append(p.closed, pos)
	p.trackPending()
}

func (p *Printer) resolveClosed() {
	for _, pos := range p.closed {
		p.resolve(pos)
	}
	p.closed = p.closed[:0]
}

func (p *Printer) dropClosed(pos int) {
	for i, c := range p.closed {
		if c == pos {
			p.closed = append(p.closed[:i], p.closed[i+1:]...)
			return
		}
	}
}

func (p *Printer) resolve(pos int) {
	p.buf.At(pos).size += p.rightTotal
}

func (p *Printer) pendingBreak() bool {
	if p.scan.Len() == 0 {
		return false
	}
	_, ok := p.buf.At(p.scan.Back()).tok.(BreakToken)
	return ok
}

// The buffer is empty whenever nothing is pending: resolved entries at the
// head are always flushed right away. Tokens that cannot change any
// pending decision are printed directly in that state.

func (p *Printer) scanBegin(b BeginToken) {
	if p.idle() {
		p.leftTotal, p.rightTotal = 1, 1
	}
	p.pushPending(b)
}

func (p *Printer) scanEnd() {
	if p.idle() {
		p.print(EndToken{}, 0)
		return
	}
	if p.pendingBreak() {
		p.close(p.scan.PopBack())
	}
	// Anything still open belongs to this group, so a Begin on top is its
	// own; it is missing if the group was already forced broken.
	if p.scan.Len() > 0 {
		if _, ok := p.buf.At(p.scan.Back()).tok.(BeginToken); ok {
			p.close(p.scan.PopBack())
		}
	}
	p.push(bufEntry{tok: EndToken{}})
	p.advanceLeft()
}

func (p *Printer) scanBreak(b BreakToken) {
	if len(p.closed) > 0 {
		p.resolveClosed()
		p.advanceLeft()
	}
	if p.scan.Len() == 0 {
		p.leftTotal, p.rightTotal = 1, 1
	} else if p.pendingBreak() {
		p.resolve(p.scan.PopBack())
	}
	p.pushPending(b)
	p.rightTotal += b.width()
	p.checkStream()
	p.advanceLeft()
}

func (p *Printer) scanString(s string) {
	w := p.out.width(s)
	if p.idle() {
		p.out.text(s, w)
		return
	}
	p.push(bufEntry{tok: StringToken(s), size: w})
	p.rightTotal += w
	p.checkStream()
}

func (p *Printer) scanIndent(t IndentToken) {
	if p.idle() {
		p.print(t, 0)
		return
	}
	p.push(bufEntry{tok: t})
}

// checkStream flushes from the head while the buffered content is wider
// than the rest of the line: the oldest pending group or break cannot fit
// whatever follows, so it is decided as broken.
func (p *Printer) checkStream() {
	for p.rightTotal-p.leftTotal > p.out.space && p.buf.Len() > 0 {
		if head := p.buf.FrontPos(); p.buf.Front().size < 0 {
			if p.scan.Len() > 0 && p.scan.Front() == head {
				p.scan.PopFront()
			} else {
				p.dropClosed(head)
			}
			p.buf.At(head).size = SizeInfinity
		}
		p.advanceLeft()
	}
}

func (p *Printer) advanceLeft() {
	for p.buf.Len() > 0 && p.buf.Front().size >= 0 {
		e := p.buf.PopFront()
		p.print(e.tok, e.size)
		switch t := e.tok.(type) {
		case BreakToken:
			p.leftTotal += t.width()
		case StringToken:
			p.leftTotal += e.size
		}
	}
}

func (p *Printer) top() *frame { return &p.frames[len(p.frames)-1] }

func (p *Printer) print(tok Token, size int) {
	switch t := tok.(type) {
	case BeginToken:
		p.printBegin(t, size)
	case EndToken:
		p.frames = p.frames[:len(p.frames)-1]
	case BreakToken:
		p.printBreak(t, size)
	case StringToken:
		p.out.text(string(t), size)
	case IndentToken:
		top := p.top()
		top.indent += t.Delta
		if top.indent < 0 {
			contractf("indentation underflow: %d", top.indent)
		}
	}
}

func (p *Printer) printBegin(b BeginToken, size int) {
	top := p.top()
	if size <= p.out.space {
		p.frames = append(p.frames, frame{indent: top.indent, breaks: b.Breaks, fits: true})
		return
	}
	base := top.indent
	if b.Align {
		base = p.out.column()
	}
	indent := base + b.Offset
	if indent < 0 {
		contractf("group indentation underflow: %d", indent)
	}
	p.frames = append(p.frames, frame{indent: indent, breaks: b.Breaks})
}

func (p *Printer) printBreak(b BreakToken, size int) {
	top := p.top()
	switch {
	case b.Kind == BreakHard:
	case top.fits:
		p.out.spaces(b.Blank)
		return
	case top.breaks == Inconsistent && size <= p.out.space:
		p.out.spaces(b.Blank)
		return
	}
	if b.PreBreak != "" {
		p.out.text(b.PreBreak, p.out.width(b.PreBreak))
	}
	p.out.newline(top.indent + b.Offset)
}
