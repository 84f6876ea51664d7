package cmark

import "github.com/jcorbin/mdcm/event"

// writer drives the five-phase sequencer of spec.md §4.2 over a pulled
// event.Events stream, dispatching grouped runs to the emitters in emit.go.
// It owns exactly the state spec.md §3 names: the container stack (with its
// outgoing counter), and the incoming buffer.
type writer struct {
	src  event.Events
	peek event.Event
	has  bool // peek holds a valid lookahead event
	done bool // src exhausted

	stack    containerStack
	incoming []event.Event

	sink sink
	diag diagnostics
}

// next pulls the next event from src, honoring one event of lookahead.
func (w *writer) next() (event.Event, bool) {
	ev, ok := w.peekEvent()
	if ok {
		w.has = false
	}
	return ev, ok
}

// peekEvent returns the next event without consuming it.
func (w *writer) peekEvent() (event.Event, bool) {
	if !w.has && !w.done {
		ev, ok := w.src.Next()
		if ok {
			w.peek = ev
			w.has = true
		} else {
			w.done = true
		}
	}
	return w.peek, w.has
}

// run executes the sequencer to completion, writing emitted bytes to
// w.sink and returning the first I/O error encountered, if any.
func (w *writer) run() error {
	phase := phaseNone
	for {
		next := phaseNone

		for {
			ev, ok := w.peekEvent()
			if !ok {
				break
			}
			ctx := w.classifyContext(phase)
			c := classify(ev, ctx)

			switch {
			case c == phase:
				if phase == phaseBlockEnd {
					w.next()
					w.stack.outgoing++
				} else {
					e, _ := w.next()
					w.incoming = append(w.incoming, e)
				}
				continue
			case phase == phaseBlockEnd && c == phaseBlockStart:
				// defer closing containers that are immediately reopened by
				// a sibling block: let the transition emitter (which sees
				// both sides) pick the vertical spacing instead of
				// exit-nesting unconditionally emitting nothing.
				phase = phaseBlockStart
				e, _ := w.next()
				w.incoming = append(w.incoming, e)
				continue
			default:
				next = c
			}
			break
		}

		switch phase {
		case phaseNone:
			if next == phaseNone {
				return w.sink.err()
			}
		case phaseBlockStart:
			w.enterTransition(w.incoming)
		case phaseInline:
			w.commitInline(next)
		case phaseBlockEnd:
			// Same deferral as above: a childless leaf (Rule, a standalone
			// Html block, tight-list text) arriving right after a run of
			// closes is itself entered via enterTransition in the seed half
			// below, so skip the ordinary exit-nesting commit here and
			// leave the outgoing count intact for it to consume.
			if next != phaseChildlessLeaf {
				w.exitCurrent()
			}
		}
		w.incoming = w.incoming[:0]

		switch next {
		case phaseBlockStart, phaseInline:
			w.stack.outgoing = 0
			e, ok := w.next()
			if !ok {
				return w.sink.err()
			}
			w.incoming = append(w.incoming, e)
			phase = next
		case phaseChildlessLeaf:
			e, ok := w.next()
			if !ok {
				return w.sink.err()
			}
			w.enterTransition([]event.Event{e})
			w.stack.outgoing = 1
			phase = phaseBlockEnd
		case phaseBlockEnd:
			if _, ok := w.next(); !ok {
				return w.sink.err()
			}
			w.stack.outgoing = 1
			phase = phaseBlockEnd
		case phaseNone:
			return w.sink.err()
		}
	}
}

// classifyContext computes the effective context classify needs: the
// container stack with outgoing entries removed, extended by whatever has
// already been accumulated into incoming during an in-progress phase-1 run
// (spec.md §4.1).
func (w *writer) classifyContext(phase phase) []event.Event {
	eff := w.stack.effective()
	if phase != phaseBlockStart || len(w.incoming) == 0 {
		return eff
	}
	ctx := make([]event.Event, 0, len(eff)+len(w.incoming))
	ctx = append(ctx, eff...)
	ctx = append(ctx, w.incoming...)
	return ctx
}

// enterTransition implements the "Leaving 1" commit and its phase-3 seed
// reuse: if outgoing entries are pending (we arrived here via the deferred
// close above), decide and emit the transition between them and adding,
// then truncate them off the stack; either way, enter-nest adding against
// the now-current stack and push it.
func (w *writer) enterTransition(adding []event.Event) {
	if w.stack.outgoing > 0 {
		n := w.stack.len() - w.stack.outgoing
		removing := w.stack.events[n:]
		transition(w, w.stack.events[:n], removing, adding)
	}
	w.stack.truncate()
	enterNesting(w, w.stack.effective(), adding)
	w.stack.push(adding)
}

// exitCurrent implements the "Leaving 4" commit (which run skips when a
// childless leaf comes next, see above): close out
// whatever is pending in the outgoing count with no transition (ordinary
// nested close, not a reopened sibling).
func (w *writer) exitCurrent() {
	n := w.stack.len() - w.stack.outgoing
	removing := w.stack.events[n:]
	exitNesting(w, w.stack.events[:n], removing)
	w.stack.truncate()
}

// commitInline implements "Leaving 2": apply the fenced-code trailing
// newline rewrite (spec.md §4.2, §9) when the next run will close the
// fence, then run the inline-run emitter.
func (w *writer) commitInline(next phase) {
	if next == phaseBlockEnd {
		if last, ok := w.stack.last(); ok && last.Tag.Type == event.CodeBlock && last.Tag.Fenced {
			if n := len(w.incoming); n > 0 {
				t := w.incoming[n-1]
				if t.Kind == event.Text && len(t.Literal) > 0 && t.Literal[len(t.Literal)-1] == '\n' {
					t.Literal = t.Literal[:len(t.Literal)-1]
					w.incoming[n-1] = t
				}
			}
		}
	}
	inlineRun(w, w.stack.effective(), w.incoming)
}
