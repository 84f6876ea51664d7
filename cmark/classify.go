package cmark

import "github.com/jcorbin/mdcm/event"

// phase is one of the five states of spec.md §3/§4.2. phaseNone is only
// ever the sequencer's initial/terminal state; classify never returns it.
type phase int

const (
	phaseNone          phase = iota // 0: initial / input exhausted
	phaseBlockStart                 // 1: collecting block starts
	phaseInline                     // 2: collecting inlines
	phaseChildlessLeaf              // 3: transient, injected not persisted
	phaseBlockEnd                   // 4: collecting block ends
)

func (p phase) String() string {
	switch p {
	case phaseNone:
		return "none"
	case phaseBlockStart:
		return "block-start"
	case phaseInline:
		return "inline"
	case phaseChildlessLeaf:
		return "childless-leaf"
	case phaseBlockEnd:
		return "block-end"
	default:
		return "invalid-phase"
	}
}

// classify maps an event to its phase, per spec.md §4.1's classification
// table. ctx is the effective context the event is being read within: the
// container stack with outgoing entries removed, extended by whatever has
// already been accumulated into incoming during the current phase-1 run (see
// sequencer.go). classify needs only ctx's last entry, to resolve the
// tri-state Html/Text classification.
func classify(ev event.Event, ctx []event.Event) phase {
	switch ev.Kind {
	case event.Start:
		if ev.Tag.IsBlock() {
			return phaseBlockStart
		}
		return phaseInline
	case event.End:
		if ev.Tag.IsBlock() {
			return phaseBlockEnd
		}
		return phaseInline
	case event.Rule:
		return phaseChildlessLeaf
	case event.HTML:
		if htmlIsBlockContent(ctx) {
			return phaseChildlessLeaf
		}
		return phaseInline
	case event.Text:
		if textIsTightListLeaf(ctx) {
			return phaseChildlessLeaf
		}
		return phaseInline
	default:
		return phaseInline
	}
}

// htmlIsBlockContent reports whether an Html event is a standalone HTML
// block (true) as opposed to being the content of an already-open leaf
// block it immediately follows (false, in which case it classifies as
// inline). See spec.md §4.1: "Html counts as a childless leaf unless it
// immediately follows a leaf-block start".
func htmlIsBlockContent(ctx []event.Event) bool {
	if n := len(ctx); n > 0 {
		top := ctx[n-1]
		if top.Kind == event.Start && top.Tag.IsBlock() && !top.Tag.IsContainer() {
			return false
		}
	}
	return true
}

// textIsTightListLeaf reports whether a bare Text event directly follows an
// Item start -- the parser's signal that the item's paragraph was elided
// because the enclosing list is tight.
func textIsTightListLeaf(ctx []event.Event) bool {
	if n := len(ctx); n > 0 {
		top := ctx[n-1]
		return top.Kind == event.Start && top.Tag.Type == event.Item
	}
	return false
}
