// Package boxfmt formats SQL, JSON and YAML documents with the pretty
// layout engine.
package boxfmt

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/mjibson/boxfmt/pretty"
	"github.com/mjibson/boxfmt/trivia"
)

type Options struct {
	Pretty pretty.Config
	// Case is applied to keywords. Nil keeps them upper case.
	Case func(string) string
	// Expanded puts every element of a broken list on its own line.
	Expanded bool
	// Color highlights keywords with terminal escapes.
	Color  bool
	Trivia trivia.Policy
}

func DefaultOptions() Options {
	return Options{
		Pretty: pretty.DefaultConfig(),
		Trivia: trivia.DefaultPolicy(),
	}
}

func (o Options) config() pretty.Config {
	c := o.Pretty
	if o.Color {
		c.ANSI = true
	}
	return c
}

func (o Options) listBreaks() pretty.Breaks {
	if o.Expanded {
		return pretty.Consistent
	}
	return pretty.Inconsistent
}

const (
	colorReset   = "\033[0m"
	colorKeyword = "\033[34m"
)

func (o Options) keyword(s string) string {
	if o.Case != nil {
		s = o.Case(s)
	}
	if o.Color {
		s = colorKeyword + s + colorReset
	}
	return s
}

var caseModes = map[string]func(string) string{
	"upper":     strings.ToUpper,
	"lower":     strings.ToLower,
	"title":     titleCase,
	"spongebob": spongeBobCase,
}

// CaseMode returns the keyword case function named s.
func CaseMode(s string) (func(string) string, error) {
	f, ok := caseModes[s]
	if !ok {
		return nil, errors.Errorf("unknown case %q, want one of %s", s, strings.Join(CaseModes(), ", "))
	}
	return f, nil
}

func CaseModes() []string {
	var names []string
	for k := range caseModes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func titleCase(s string) string {
	return strings.Title(strings.ToLower(s))
}

// spongeBobCase seeds from the input so the same keyword always comes out
// the same way.
func spongeBobCase(s string) string {
	seed := int64(len(s))
	for _, c := range s {
		seed = seed*31 + int64(c)
	}
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		b.WriteRune(unicode.To(rng.Intn(2), c))
	}
	return b.String()
}

// ParseBool accepts "on" and "off" in addition to strconv.ParseBool.
func ParseBool(val string) (bool, error) {
	switch val {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return strconv.ParseBool(val)
	}
}
