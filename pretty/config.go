package pretty

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/pkg/errors"
)

// Config holds the layout options of a single render.
type Config struct {
	// Margin is the desired maximum number of columns per line.
	Margin int
	// IndentUnit is the number of columns per indentation level. It is also
	// the width of a tab when UseTabs is set.
	IndentUnit int
	// UseTabs renders leading indentation with tabs.
	UseTabs bool
	// ANSI ignores terminal escape sequences when measuring text.
	ANSI bool
}

func DefaultConfig() Config {
	return Config{
		Margin:     80,
		IndentUnit: 4,
	}
}

func (c Config) Validate() error {
	if c.Margin < 1 {
		return errors.Errorf("line length must be > 0: %d", c.Margin)
	}
	if c.Margin > MaxMargin {
		return errors.Errorf("line length must be <= %d: %d", MaxMargin, c.Margin)
	}
	if c.IndentUnit < 1 {
		return errors.Errorf("indent width must be > 0: %d", c.IndentUnit)
	}
	return nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	if c.IndentUnit == 0 {
		c.IndentUnit = d.IndentUnit
	}
	return c
}

func (c Config) widthFunc() func(string) int {
	if c.ANSI {
		return ansi.PrintableRuneWidth
	}
	return runewidth.StringWidth
}

// ContractError reports a token sequence that breaks the emission
// contract: unbalanced groups, indentation underflow or use after Eof.
// It is raised with panic; output produced after such a call would be
// wrong, so there is nothing to recover.
type ContractError struct {
	err error
}

func contractf(format string, args ...interface{}) {
	panic(&ContractError{err: errors.Errorf(format, args...)})
}

func (e *ContractError) Error() string { return "pretty: " + e.err.Error() }

func (e *ContractError) Cause() error { return e.err }

func (e *ContractError) Unwrap() error { return e.err }
