package mdast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcm/cmark"
	"github.com/jcorbin/mdcm/event"
	"github.com/jcorbin/mdcm/internal/mdast"
)

func roundtrip(t *testing.T, src string) string {
	t.Helper()
	evs := mdast.Parse([]byte(src))
	var buf bytes.Buffer
	var diag bytes.Buffer
	_, err := cmark.Push(&buf, event.NewSlice(evs), cmark.WithDiagnostics(&diag))
	require.NoError(t, err)
	assert.Empty(t, diag.String(), "unexpected diagnostics for %q", src)
	return buf.String()
}

func TestParseScenarios(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "hello\n", "hello"},
		{"sibling paragraphs", "a\n\nb\n", "a\n\nb"},
		{"block quote soft break", "> q\n> r\n", "> q\n> r"},
		{"heading", "## Title\n", "## Title"},
		{"emphasis and strong", "*a***b**\n", "*a***b**"},
		{"thematic break", "***\n", "***"},
		{"tight unordered list", "* one\n* two\n", "* one\n* two"},
		{"loose unordered list", "* one\n\n* two\n", "* one\n\n* two"},
		{"ordered list", "1. one\n2. two\n", "1. one\n2. two"},
		{"inline link with title", `[go](/x "t")` + "\n", `[go](/x "t")`},
		{"autolink", "<https://example.com>\n", "<https://example.com>"},
		{"image", "![alt](/i.png)\n", "![alt](/i.png)"},
		{"hard break inside block quote", "> a\\\n> b\n", "> a\\\n> b"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, roundtrip(t, tc.src))
		})
	}
}

// TestParseFencedCodeSurvivesTripleBacktick confirms the bridge carries the
// Fenced flag through, so cmark picks the four-backtick dialect that keeps
// an embedded triple-backtick span intact.
func TestParseFencedCodeSurvivesTripleBacktick(t *testing.T) {
	src := "````go\n```\nx := 1\n````\n"
	evs := mdast.Parse([]byte(src))

	var found bool
	for _, ev := range evs {
		if ev.Kind == event.Start && ev.Tag.Type == event.CodeBlock {
			found = true
			assert.True(t, ev.Tag.Fenced)
			assert.Equal(t, "go", ev.Tag.Info)
		}
	}
	assert.True(t, found, "expected a CodeBlock Start event")
}

// TestParseUnsupportedTableFallsBackToDiagnostic exercises the Table
// dimension wired into the bridge, and confirms cmark's documented
// diagnostic fallback (spec.md §9) fires rather than a crash.
func TestParseUnsupportedTableFallsBackToDiagnostic(t *testing.T) {
	src := "a | b\n--|--\n1 | 2\n"
	evs := mdast.Parse([]byte(src))

	var buf, diag bytes.Buffer
	_, err := cmark.Push(&buf, event.NewSlice(evs), cmark.WithDiagnostics(&diag))
	require.NoError(t, err)
	assert.NotEmpty(t, diag.String())
}
