package cmark

import (
	"fmt"
	"strings"

	"github.com/jcorbin/mdcm/event"
)

// escapeText implements escape-text(s, options) of spec.md §4.3: backslash
// every ASCII punctuation byte, and optionally turn a literal linefeed into
// a numeric character reference so it can't be mistaken for a real line
// break inside constructs (headings, table cells) where one isn't allowed.
func escapeText(s string, escapeLinefeed bool) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' && escapeLinefeed:
			b.WriteString("&#10;")
		case isASCIIPunct(r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isASCIIPunct reports whether r is one of CommonMark's ASCII punctuation
// characters: !-/, :-@, [-`, {-~.
func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}

// containerLineStart implements container-line-start(context) of spec.md
// §4.3: the prefix that must begin any new line written while context is
// open, so that re-emitted content stays nested under its blockquotes,
// lists, and indented code blocks.
func containerLineStart(ctx []event.Event) string {
	var b strings.Builder
	for i := 0; i < len(ctx); i++ {
		tag := ctx[i].Tag
		switch tag.Type {
		case event.CodeBlock:
			if !tag.Fenced {
				b.WriteString("    ")
			}
		case event.BlockQuote:
			b.WriteString("> ")
		case event.List:
			if i+1 < len(ctx) && ctx[i+1].Tag.Type == event.Item {
				if tag.Ordered {
					marker := fmt.Sprintf("%d. ", tag.Start-1)
					b.WriteString(strings.Repeat(" ", len(marker)))
				} else {
					b.WriteString("  ")
				}
				i++ // consume the Item
			}
		}
	}
	return b.String()
}
