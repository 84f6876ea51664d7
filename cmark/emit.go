package cmark

import (
	"fmt"
	"strings"

	"github.com/jcorbin/mdcm/event"
)

// codeFence is the fenced-code-block delimiter. The output dialect fixes
// this at four backticks rather than CommonMark's minimum of three, so that
// fenced content containing a triple-backtick span round-trips intact.
const codeFence = "````"

// enterNesting implements spec.md §4.3's enter-nesting table: render each
// event of seq in order against ctx (the stack as it stood before seq was
// pushed), mutating an ordered List's running item counter in place as
// Start(Item) events consume it.
//
// seq may itself contain a List immediately followed by its first Item (a
// freshly opened nested list), so lookups fall back from "the entry just
// processed in this same seq" to ctx, matching "the event is appended to
// the running context used for subsequent events in the same group".
func enterNesting(w *writer, ctx []event.Event, seq []event.Event) {
	for i, ev := range seq {
		switch ev.Kind {
		case event.Rule:
			parent, _ := lastBlockTag(ctx, seq, i)
			if parent.Type == event.Item {
				w.sink.puts("---")
			} else {
				w.sink.puts("***")
			}
		case event.HTML:
			w.sink.puts(ev.Literal)
			if strings.HasSuffix(ev.Literal, "\n") {
				w.sink.puts(containerLineStart(combinedCtx(ctx, seq[:i])))
			}
		case event.Text:
			if codeBlockIsOpen(combinedCtx(ctx, seq[:i])) {
				w.sink.puts(ev.Literal)
			} else {
				w.sink.puts(escapeText(ev.Literal, false))
			}
		case event.Start:
			enterBlockStart(w, ctx, seq, i, ev.Tag)
		}
	}
}

func enterBlockStart(w *writer, ctx []event.Event, seq []event.Event, i int, tag event.Tag) {
	switch tag.Type {
	case event.Paragraph, event.List:
		// nothing; a List's marker is rendered per-Item below.
	case event.Heading:
		w.sink.puts(strings.Repeat("#", tag.Level) + " ")
	case event.BlockQuote:
		w.sink.puts("> ")
	case event.CodeBlock:
		if tag.Fenced {
			// Four backticks, not three: survives fenced content that
			// itself contains a triple-backtick span (spec.md §6).
			w.sink.puts(codeFence + tag.Info + "\n")
			w.sink.puts(containerLineStart(combinedCtx(ctx, seq[:i])))
		} else {
			w.sink.puts("    ")
		}
	case event.Item:
		enterItem(w, ctx, seq, i)
	default:
		w.diag.unsupported("enter-nesting", tag)
	}
}

// enterItem renders an Item's marker against its parent List, which is
// either the entry just processed earlier in seq (a list just opened in
// this same batch) or the innermost entry of ctx (a list already on the
// stack gaining another sibling item). Either way the parent's Start
// counter is mutated in its real backing slot, so later Items -- in this
// batch or a future one -- see the incremented value.
func enterItem(w *writer, ctx []event.Event, seq []event.Event, i int) {
	var parent *event.Tag
	switch {
	case i > 0 && seq[i-1].Tag.Type == event.List:
		parent = &seq[i-1].Tag
	case len(ctx) > 0 && ctx[len(ctx)-1].Tag.Type == event.List:
		parent = &ctx[len(ctx)-1].Tag
	}
	if parent == nil {
		w.diag.unsupported("enter-nesting", event.Tag{Type: event.Item})
		return
	}
	if parent.Ordered {
		w.sink.puts(fmt.Sprintf("%d. ", parent.Start))
		parent.Start++
	} else {
		w.sink.puts("* ")
	}
}

// exitNesting implements spec.md §4.3's exit-nesting table: walk removing
// (the stack entries being closed) in reverse, emitting the handful of
// block types that need closing punctuation. ctx is the stack as it will
// read once removing is gone.
func exitNesting(w *writer, ctx []event.Event, removing []event.Event) {
	for i := len(removing) - 1; i >= 0; i-- {
		tag := removing[i].Tag
		if tag.Type == event.CodeBlock && tag.Fenced {
			w.sink.puts("\n")
			w.sink.puts(containerLineStart(ctx))
			w.sink.puts(codeFence)
		}
		// Paragraph, Heading, BlockQuote, Item, List, CodeBlock(Indented):
		// nothing to emit on close.
	}
}

// transition implements spec.md §4.3's transition table: the earliest
// matching rule decides the vertical spacing between a closed run of
// siblings (removing) and a newly opened one (adding).
func transition(w *writer, ctx, removing, adding []event.Event) {
	switch {
	case len(adding) == 0 && len(ctx) == 0:
		// DoNothing.
	case isSoleStart(removing, event.Paragraph) && isSoleStart(adding, event.Paragraph):
		renew(w, ctx, true)
	case isSoleStart(removing, event.Heading) && isSoleStart(adding, event.Heading):
		renew(w, ctx, false)
	case isStartPair(removing, event.BlockQuote, event.Paragraph) && isStartPair(adding, event.BlockQuote, event.Paragraph):
		renew(w, ctx, true)
	// Sibling list items: not in the original table, but needed for every
	// list of more than one item. A loose item (its content wrapped in a
	// Paragraph anywhere in the closing/opening run) gets a blank line;
	// a tight item (content is a bare childless-leaf Text/Html/Rule, per
	// textIsTightListLeaf) gets a single newline.
	case isItemTransition(removing, adding):
		renew(w, ctx, containsStart(removing, event.Paragraph) || containsStart(adding, event.Paragraph))
	case isSoleKind(removing, event.HTML) && isSoleKind(adding, event.HTML):
		// DoNothing.
	case isSoleKind(removing, event.Text) && isSoleKind(adding, event.Text):
		// DoNothing.
	case len(removing) > 0 && removing[0].Kind == event.Start && removing[0].Tag.Type == event.List:
		renew(w, ctx, true)
	default:
		w.diag.notef("unhandled transition: removing=%v adding=%v", removing, adding)
		renew(w, ctx, false)
	}
}

// renew emits NewlineAndRenew, or twice for ExtraNewlineAndRenew.
func renew(w *writer, ctx []event.Event, extra bool) {
	prefix := containerLineStart(ctx)
	w.sink.puts("\n")
	w.sink.puts(prefix)
	if extra {
		w.sink.puts("\n")
		w.sink.puts(prefix)
	}
}

// inlineRun implements spec.md §4.3's inline-run table, rendering each
// event of seq in order. ctx is the (unchanging, for the duration of the
// run) open block stack, consulted only to pick CodeBlock/Heading mode and
// to compute re-emitted line prefixes.
func inlineRun(w *writer, ctx []event.Event, seq []event.Event) {
	inCode := codeBlockIsOpen(ctx)
	inHeading := headingIsOpen(ctx)
	prefix := containerLineStart(ctx)
	inAutolink := false // backslash escapes are not recognized inside <...>

	for _, ev := range seq {
		switch ev.Kind {
		case event.Text:
			switch {
			case inCode, inAutolink:
				w.sink.puts(ev.Literal)
			case inHeading:
				w.sink.puts(escapeText(ev.Literal, true))
			default:
				w.sink.puts(escapeText(ev.Literal, false))
			}
			if strings.HasSuffix(ev.Literal, "\n") {
				w.sink.puts(prefix)
			}
		case event.SoftBreak:
			if inHeading {
				w.sink.puts("&#10;")
			} else {
				w.sink.puts("\n")
				w.sink.puts(prefix)
			}
		case event.HardBreak:
			w.sink.puts("\\\n")
			w.sink.puts(prefix)
		case event.Code:
			w.sink.puts("`")
			w.sink.puts(ev.Literal)
			w.sink.puts("`")
		case event.HTML:
			w.sink.puts(ev.Literal)
		case event.Start:
			if ev.Tag.Type == event.Link && isAutolink(ev.Tag) {
				inAutolink = true
			}
			emitInlineStart(w, ev.Tag)
		case event.End:
			if ev.Tag.Type == event.Link && isAutolink(ev.Tag) {
				inAutolink = false
			}
			emitInlineEnd(w, ev.Tag)
		}
	}
}

func emitInlineStart(w *writer, tag event.Tag) {
	switch tag.Type {
	case event.Emphasis:
		w.sink.puts("*")
	case event.Strong:
		w.sink.puts("**")
	case event.Link:
		if isAutolink(tag) {
			w.sink.puts("<")
		} else {
			w.sink.puts("[")
		}
	case event.Image:
		w.sink.puts("![")
	default:
		w.diag.unsupported("inline-run", tag)
	}
}

func emitInlineEnd(w *writer, tag event.Tag) {
	switch tag.Type {
	case event.Emphasis:
		w.sink.puts("*")
	case event.Strong:
		w.sink.puts("**")
	case event.Link:
		if isAutolink(tag) {
			w.sink.puts(">")
		} else {
			w.sink.puts(linkTail(tag.Dest, tag.Title))
		}
	case event.Image:
		w.sink.puts(linkTail(tag.Dest, tag.Title))
	default:
		w.diag.unsupported("inline-run", tag)
	}
}

func isAutolink(tag event.Tag) bool {
	return tag.LinkType == event.LinkAutolink || tag.LinkType == event.LinkEmail
}

func linkTail(dest, title string) string {
	if title == "" {
		return "](" + dest + ")"
	}
	return fmt.Sprintf("](%s %q)", dest, title)
}

// --- small shared predicates ---

func lastBlockTag(ctx, seq []event.Event, i int) (event.Tag, bool) {
	if i > 0 {
		return seq[i-1].Tag, true
	}
	if n := len(ctx); n > 0 {
		return ctx[n-1].Tag, true
	}
	return event.Tag{}, false
}

func combinedCtx(ctx, processed []event.Event) []event.Event {
	if len(processed) == 0 {
		return ctx
	}
	out := make([]event.Event, 0, len(ctx)+len(processed))
	out = append(out, ctx...)
	out = append(out, processed...)
	return out
}

func codeBlockIsOpen(ctx []event.Event) bool {
	n := len(ctx)
	return n > 0 && ctx[n-1].Tag.Type == event.CodeBlock
}

func headingIsOpen(ctx []event.Event) bool {
	n := len(ctx)
	return n > 0 && ctx[n-1].Tag.Type == event.Heading
}

func isSoleStart(seq []event.Event, t event.TagType) bool {
	return len(seq) == 1 && seq[0].Kind == event.Start && seq[0].Tag.Type == t
}

func isSoleKind(seq []event.Event, k event.Kind) bool {
	return len(seq) == 1 && seq[0].Kind == k
}

func isStartPair(seq []event.Event, t0, t1 event.TagType) bool {
	return len(seq) == 2 &&
		seq[0].Kind == event.Start && seq[0].Tag.Type == t0 &&
		seq[1].Kind == event.Start && seq[1].Tag.Type == t1
}

func isItemTransition(removing, adding []event.Event) bool {
	return len(removing) > 0 && removing[0].Kind == event.Start && removing[0].Tag.Type == event.Item &&
		len(adding) > 0 && adding[0].Kind == event.Start && adding[0].Tag.Type == event.Item
}

func containsStart(seq []event.Event, t event.TagType) bool {
	for _, ev := range seq {
		if ev.Kind == event.Start && ev.Tag.Type == t {
			return true
		}
	}
	return false
}
