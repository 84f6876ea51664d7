// Command mdcat re-serializes a Markdown file through the cmark event
// sequencer: it parses input with blackfriday, flattens the parse tree into
// an event.Event stream via internal/mdast, and writes the canonicalized
// Markdown back out with package cmark.
package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"

	"github.com/jcorbin/mdcm/cmark"
	"github.com/jcorbin/mdcm/event"
	"github.com/jcorbin/mdcm/internal/bufutil"
	"github.com/jcorbin/mdcm/internal/mdast"
)

func main() {
	var (
		in  = flag.String("file", "", "input Markdown file (default stdin)")
		out = flag.String("out", "", "output file (default stdout)")
		dd  = flag.Bool("diagnostics", false, "write cmark diagnostics to stderr")
	)
	flag.Parse()

	if err := run(*in, *out, *dd); err != nil {
		log.Fatal(err)
	}
}

func run(in, out string, diagnostics bool) error {
	src, err := readInput(in)
	if err != nil {
		return err
	}

	events := mdast.Parse(src)

	var opts []cmark.Option
	if diagnostics {
		opts = append(opts, cmark.WithDiagnostics(os.Stderr))
	}

	w, closeOut, err := openOutput(out)
	if err != nil {
		return err
	}
	defer closeOut()

	if _, err := cmark.Write(w, event.NewSlice(events), opts...); err != nil {
		return err
	}
	return w.Err
}

func readInput(in string) ([]byte, error) {
	if in == "" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(in)
}

// openOutput returns a writer for out (stdout if empty) and a close func
// that, for a real file, atomically replaces it in the style of the
// teacher's streamStore.save -- write to a temp file alongside out, then
// rename into place, rather than truncating it in place. The writer is
// wrapped in a bufutil.ErrWriter exactly as streamStore.To is, so the
// caller can write through it without checking every call and consult Err
// once at the end.
func openOutput(out string) (w *bufutil.ErrWriter, closeFn func() error, err error) {
	if out == "" {
		return &bufutil.ErrWriter{Writer: os.Stdout}, func() error { return nil }, nil
	}

	pf, err := renameio.TempFile("", out)
	if err != nil {
		return nil, nil, err
	}
	return &bufutil.ErrWriter{Writer: pf}, func() (rerr error) {
		defer func() {
			if cerr := pf.Cleanup(); rerr == nil {
				rerr = cerr
			}
		}()
		return pf.CloseAtomicallyReplace()
	}, nil
}
