// Package cmark re-serializes a flat CommonMark parse-event stream (package
// event) back into Markdown text, the inverse of what scandown does for
// parsing: scandown turns text into a stream of block boundaries, cmark
// turns a stream of parse events back into text that re-parses to an
// equivalent stream.
package cmark

import (
	"bytes"
	"io"

	"github.com/jcorbin/mdcm/event"
	"github.com/jcorbin/mdcm/internal/bufutil"
)

// Option configures a Push or Write call.
type Option func(*writer)

// WithDiagnostics directs non-fatal "unhandled event/transition" notes to w
// instead of discarding them.
func WithDiagnostics(w io.Writer) Option {
	return func(wr *writer) { wr.diag = newDiagnostics(w) }
}

// Push serializes events into buf, appending to whatever it already
// contains. Since bytes.Buffer.Write never fails, the returned error is
// always nil; write errors from a diagnostic sink supplied via
// WithDiagnostics are ignored and never reported here.
func Push(buf *bytes.Buffer, events event.Events, opts ...Option) (int, error) {
	wr := &writer{src: events, sink: sink{w: bufutil.ErrWriter{Writer: buf}}}
	for _, opt := range opts {
		opt(wr)
	}
	err := wr.run()
	return int(wr.sink.n), err
}

// Write serializes events to w, returning the number of bytes written and
// the first I/O error encountered, if any. Serialization stops as soon as a
// write fails.
func Write(w io.Writer, events event.Events, opts ...Option) (int64, error) {
	wr := &writer{src: events, sink: sink{w: bufutil.ErrWriter{Writer: w}}}
	for _, opt := range opts {
		opt(wr)
	}
	err := wr.run()
	return wr.sink.n, err
}
