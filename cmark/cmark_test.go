package cmark_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcm/cmark"
	"github.com/jcorbin/mdcm/event"
)

func push(t *testing.T, evs ...event.Event) string {
	t.Helper()
	var buf bytes.Buffer
	var diag bytes.Buffer
	n, err := cmark.Push(&buf, event.NewSlice(evs), cmark.WithDiagnostics(&diag))
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)
	assert.Empty(t, diag.String(), "unexpected diagnostics")
	return buf.String()
}

func start(t event.TagType) event.Event { return event.Event{Kind: event.Start, Tag: event.Tag{Type: t}} }
func end(t event.TagType) event.Event   { return event.Event{Kind: event.End, Tag: event.Tag{Type: t}} }
func text(s string) event.Event         { return event.Event{Kind: event.Text, Literal: s} }

// Scenario 1 of spec.md §8: a single paragraph.
func TestScenario1Paragraph(t *testing.T) {
	out := push(t,
		start(event.Paragraph), text("hello"), end(event.Paragraph),
	)
	assert.Equal(t, "hello", out)
}

// Scenario 2 of spec.md §8: two sibling paragraphs get a blank line between.
func TestScenario2SiblingParagraphs(t *testing.T) {
	out := push(t,
		start(event.Paragraph), text("a"), end(event.Paragraph),
		start(event.Paragraph), text("b"), end(event.Paragraph),
	)
	assert.Equal(t, "a\n\nb", out)
}

// Scenario 3 of spec.md §8: a block quote containing one paragraph with a
// soft break keeps the "> " prefix on both lines.
func TestScenario3BlockQuoteSoftBreak(t *testing.T) {
	out := push(t,
		start(event.BlockQuote), start(event.Paragraph),
		text("q"), event.Event{Kind: event.SoftBreak}, text("r"),
		end(event.Paragraph), end(event.BlockQuote),
	)
	assert.Equal(t, "> q\n> r", out)
}

func TestEmptyStream(t *testing.T) {
	assert.Equal(t, "", push(t))
}

func TestSingleRule(t *testing.T) {
	out := push(t, event.Event{Kind: event.Rule})
	assert.Equal(t, "***", out)
}

func TestRuleInsideTightItem(t *testing.T) {
	out := push(t,
		start(event.List), start(event.Item),
		event.Event{Kind: event.Rule},
		end(event.Item), end(event.List),
	)
	assert.Equal(t, "* ---", out)
}

func TestHeading(t *testing.T) {
	out := push(t,
		event.Event{Kind: event.Start, Tag: event.Tag{Type: event.Heading, Level: 2}},
		text("Title"),
		event.Event{Kind: event.End, Tag: event.Tag{Type: event.Heading, Level: 2}},
	)
	assert.Equal(t, "## Title", out)
}

func TestFencedCodeBlockSurvivesTripleBacktick(t *testing.T) {
	out := push(t,
		event.Event{Kind: event.Start, Tag: event.Tag{Type: event.CodeBlock, Fenced: true, Info: "go"}},
		text("```\nx := 1\n"),
		event.Event{Kind: event.End, Tag: event.Tag{Type: event.CodeBlock, Fenced: true}},
	)
	assert.Equal(t, "````go\n```\nx := 1\n````", out)
}

func TestOrderedListCounts(t *testing.T) {
	// Tight list: item content is bare Text, no Paragraph wrapper.
	list := event.Tag{Type: event.List, Ordered: true, Start: 1}
	out := push(t,
		event.Event{Kind: event.Start, Tag: list},
		start(event.Item), text("one"), end(event.Item),
		start(event.Item), text("two"), end(event.Item),
		event.Event{Kind: event.End, Tag: list},
	)
	assert.Equal(t, "1. one\n2. two", out)
}

func TestLooseListGetsBlankLineBetweenItems(t *testing.T) {
	list := event.Tag{Type: event.List, Start: 1}
	out := push(t,
		event.Event{Kind: event.Start, Tag: list},
		start(event.Item), start(event.Paragraph), text("one"), end(event.Paragraph), end(event.Item),
		start(event.Item), start(event.Paragraph), text("two"), end(event.Paragraph), end(event.Item),
		event.Event{Kind: event.End, Tag: list},
	)
	assert.Equal(t, "* one\n\n* two", out)
}

func TestEmphasisAndStrong(t *testing.T) {
	out := push(t,
		start(event.Paragraph),
		start(event.Emphasis), text("a"), end(event.Emphasis),
		start(event.Strong), text("b"), end(event.Strong),
		end(event.Paragraph),
	)
	assert.Equal(t, "*a***b**", out)
}

func TestInlineLinkWithTitle(t *testing.T) {
	link := event.Tag{Type: event.Link, Dest: "/x", Title: "t"}
	out := push(t,
		start(event.Paragraph),
		event.Event{Kind: event.Start, Tag: link}, text("go"), event.Event{Kind: event.End, Tag: link},
		end(event.Paragraph),
	)
	assert.Equal(t, `[go](/x "t")`, out)
}

func TestAutolink(t *testing.T) {
	link := event.Tag{Type: event.Link, LinkType: event.LinkAutolink, Dest: "https://example.com"}
	out := push(t,
		start(event.Paragraph),
		event.Event{Kind: event.Start, Tag: link}, text("https://example.com"), event.Event{Kind: event.End, Tag: link},
		end(event.Paragraph),
	)
	assert.Equal(t, "<https://example.com>", out)
}

func TestImage(t *testing.T) {
	img := event.Tag{Type: event.Image, Dest: "/i.png"}
	out := push(t,
		start(event.Paragraph),
		event.Event{Kind: event.Start, Tag: img}, text("alt"), event.Event{Kind: event.End, Tag: img},
		end(event.Paragraph),
	)
	assert.Equal(t, "![alt](/i.png)", out)
}

func TestHardBreakInsideBlockQuote(t *testing.T) {
	out := push(t,
		start(event.BlockQuote), start(event.Paragraph),
		text("a"), event.Event{Kind: event.HardBreak}, text("b"),
		end(event.Paragraph), end(event.BlockQuote),
	)
	assert.Equal(t, "> a\\\n> b", out)
}

func TestUnhandledTransitionDiagnosed(t *testing.T) {
	var buf bytes.Buffer
	var diag bytes.Buffer
	_, err := cmark.Push(&buf, event.NewSlice([]event.Event{
		start(event.Heading), text("a"), end(event.Heading),
		start(event.BlockQuote), start(event.Paragraph), text("b"), end(event.Paragraph), end(event.BlockQuote),
	}), cmark.WithDiagnostics(&diag))
	require.NoError(t, err)
	assert.Contains(t, diag.String(), "unhandled transition")
}

func TestWriteReportsUnderlyingError(t *testing.T) {
	_, err := cmark.Write(failingWriter{}, event.NewSlice([]event.Event{text("x")}))
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }
