// Package pretty lays out documents within a line width.
//
// The engine is a Printer: callers emit atomic text, break points, group
// delimiters and indentation changes, and the Printer decides for every
// group whether it is written flat or broken. Consistent groups break at
// all of their own break points or at none; inconsistent groups break
// only where the following text would overflow. Decisions are made with
// bounded lookahead, so tokens are written out as soon as the group or
// break they depend on is known to fit or not.
//
// Doc values offer a declarative way to build the same token streams.
package pretty

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var errCanceled = errors.New("pretty: canceled")

// Pretty renders d with cfg and writes the result to w.
func Pretty(ctx context.Context, d Doc, w io.Writer, cfg Config) error {
	s, err := PrettyString(ctx, d, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return errors.Wrap(err, "write")
}

// PrettyString renders d with cfg. The walk over d stops early if ctx is
// done.
func PrettyString(ctx context.Context, d Doc, cfg Config) (string, error) {
	p := NewPrinter(cfg)
	e := emitter{p: p, done: ctx.Done()}
	e.emit(d)
	if e.err != nil {
		return "", ctx.Err()
	}
	return p.Eof(), nil
}

// Render replays tokens through a fresh Printer.
func Render(cfg Config, toks ...Token) string {
	p := NewPrinter(cfg)
	for _, t := range toks {
		p.Emit(t)
	}
	return p.Eof()
}

// Debug formats a token stream for inspection.
func Debug(toks ...Token) string {
	var sb strings.Builder
	depth := 0
	for i, t := range toks {
		if _, ok := t.(EndToken); ok && depth > 0 {
			depth--
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(fmt.Sprint(t))
		if _, ok := t.(BeginToken); ok {
			depth++
		}
	}
	return sb.String()
}
