package trivia

import "strings"

// Scan consumes the comment lines and blank lines at the start of src,
// which must begin at the start of a line. It returns them and the rest
// of src, starting at the first line that is neither.
func Scan(src, prefix string) (items []Comment, rest string) {
	for src != "" {
		line, next := src, ""
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			line, next = src[:i], src[i+1:]
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if next == "" && !strings.HasSuffix(src, "\n") {
				// Trailing whitespace without a newline is not a line.
				return items, ""
			}
			items = append(items, Blank())
		case strings.HasPrefix(trimmed, prefix):
			items = append(items, Comment{
				Prefix: prefix,
				Text:   strings.TrimRightFunc(trimmed[len(prefix):], isSpace),
			})
		default:
			return items, src
		}
		src = next
	}
	return items, ""
}

// SplitTrailing looks at the rest of the current line of src. If it holds
// only a comment, that comment is returned and rest starts at the next
// line. If it holds only whitespace, rest starts at the next line. Else
// src is returned unchanged.
func SplitTrailing(src, prefix string) (c Comment, rest string, ok bool) {
	line, next := src, ""
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		line, next = src[:i], src[i+1:]
	}
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Comment{}, next, false
	case strings.HasPrefix(trimmed, prefix):
		return Comment{
			Prefix: prefix,
			Text:   strings.TrimRightFunc(trimmed[len(prefix):], isSpace),
		}, next, true
	}
	return Comment{}, src, false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
