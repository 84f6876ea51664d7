package cmark

import (
	"fmt"
	"io"

	"github.com/jcorbin/mdcm/event"

	"github.com/jcorbin/mdcm/internal/bufutil"
)

// sink is the primary output writer: all emitted Markdown bytes pass through
// it. It wraps a bufutil.ErrWriter for the sticky-error/no-write-after-
// failure behavior, and additionally tracks a running byte count for
// Write's return value.
type sink struct {
	w bufutil.ErrWriter
	n int64
}

func (s *sink) puts(str string) {
	if str == "" || s.w.Err != nil {
		return
	}
	n, _ := s.w.WriteString(str)
	s.n += int64(n)
}

func (s *sink) err() error { return s.w.Err }

// diagnostics is the non-fatal side channel of spec.md §7: constructs the
// emitters can't render exactly (an unresolved table or footnote definition,
// an unhandled transition) are noted here rather than failing the whole
// re-serialization. A nil W discards everything.
type diagnostics struct {
	w      io.Writer
	prefix *bufutil.Prefixer
}

func newDiagnostics(w io.Writer) diagnostics {
	if w == nil {
		return diagnostics{}
	}
	return diagnostics{w: w, prefix: bufutil.PrefixWriter("cmark: ", w)}
}

func (d diagnostics) notef(format string, args ...interface{}) {
	if d.prefix == nil {
		return
	}
	fmt.Fprintf(d.prefix, format+"\n", args...)
	d.prefix.Flush()
}

// unsupported records that ev's tag isn't one an emitter knows how to
// render, falling back to emitting nothing for it.
func (d diagnostics) unsupported(where string, tag event.Tag) {
	d.notef("%s: unsupported %+v, emitting nothing", where, tag)
}
