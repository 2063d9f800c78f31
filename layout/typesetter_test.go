package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func monoWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapLinesHonorsNewlines(t *testing.T) {
	lines := WrapLines("foo\n\nbar", 100, monoWidth)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

func TestWrapLinesWidthLimit(t *testing.T) {
	limit := 12.0
	content := "brilha brilha estrelinha quero ver você brilhar " + strings.Repeat("a", 40)
	lines := WrapLines(content, limit, monoWidth)
	if len(lines) < 4 {
		t.Fatalf("expected several lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-9 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
		if strings.HasPrefix(ln.Content, " ") || strings.HasSuffix(ln.Content, " ") {
			t.Fatalf("line %d keeps edge spaces: %q", i, ln.Content)
		}
	}
}

// 当第一行宽度恰好等于容器宽度且后面紧跟显式换行时，不应产生额外的空行。
func TestWrapLinesNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	first := "SAMPLE-A"
	lines := WrapLines(first+"\nSAMPLE-B", monoWidth(first), monoWidth)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines without blank, got %d: %+v", len(lines), lines)
	}
	if lines[0].Content != first || lines[1].Content != "SAMPLE-B" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestWrapLinesEmptyContentYieldsOneLine(t *testing.T) {
	for _, in := range []string{"", "   "} {
		lines := WrapLines(in, 10, monoWidth)
		if len(lines) != 1 || lines[0].Content != "" {
			t.Fatalf("WrapLines(%q) = %+v", in, lines)
		}
	}
}

func TestEstimateTypesetter(t *testing.T) {
	ts := EstimateTypesetter{}
	if got := ts.Sanitize("a\tb\x00c"); got != "a b?c" {
		t.Fatalf("Sanitize = %q", got)
	}
	regular := Font{Size: 10}
	bold := Font{Size: 10, Style: StyleBold}
	if EstimateWidth("abc", bold) <= EstimateWidth("abc", regular) {
		t.Fatalf("bold text should be estimated wider")
	}
	if EstimateWidth("a b", regular) >= EstimateWidth("abc", regular) {
		t.Fatalf("spaces should be narrower than glyphs")
	}
	lines := ts.LayoutLines("um dois três", 0, regular)
	if len(lines) != 1 || lines[0].Content != "um dois três" {
		t.Fatalf("width 0 must not wrap: %+v", lines)
	}
}
