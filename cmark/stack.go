package cmark

import "github.com/jcorbin/mdcm/event"

// containerStack tracks state for the re-serialization side of the
// commonmark spec, the inverse of what scandown.BlockStack tracks for
// parsing: rather than scanning text into blocks, it remembers which block
// Start events are currently open so that later events know what textual
// context (indentation, quote markers, escape mode) they're being written
// into.
//
// It is not safe to use containerStack from parallel goroutines; its only
// use is within a synchronous sequencer loop.
type containerStack struct {
	events   []event.Event // open block Start events, deepest last
	outgoing int           // trailing entries tentatively marked for closing
}

// effective returns the stack with its trailing outgoing entries removed --
// the textual context that must prefix any newly started line, per spec.md
// §3 invariant 4.
func (s *containerStack) effective() []event.Event {
	return s.events[:len(s.events)-s.outgoing]
}

// push appends newly opened block Start events onto the stack, mutating an
// ordered List's Start counter as items are appended is handled by the
// caller (see emit.go's enterNesting), not here.
func (s *containerStack) push(evs []event.Event) {
	s.events = append(s.events, evs...)
}

// truncate drops the trailing outgoing entries for good, resetting the
// counter, and returns the entries that were open before truncation (for use
// as "removing" by the transition emitter).
func (s *containerStack) truncate() (removed []event.Event) {
	n := len(s.events) - s.outgoing
	removed = append(removed[:0], s.events[n:]...)
	s.events = s.events[:n]
	s.outgoing = 0
	return removed
}

// len returns how many blocks are currently open (including tentatively
// outgoing ones).
func (s *containerStack) len() int { return len(s.events) }

// last returns the innermost open block Start event, and whether the stack
// is non-empty.
func (s *containerStack) last() (event.Event, bool) {
	if n := len(s.events); n > 0 {
		return s.events[n-1], true
	}
	return event.Event{}, false
}
