package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !eq(cfg.PrintableWidth(), 190) {
		t.Fatalf("A4 with 10mm sides should leave 190mm, got %g", cfg.PrintableWidth())
	}
}

func TestVariants(t *testing.T) {
	plain, err := Variant("plain")
	if err != nil {
		t.Fatal(err)
	}
	if plain.VerseColor != Black || plain.LyricRuleColor != Black {
		t.Fatalf("plain variant should draw black lyrics: %+v", plain)
	}
	spacious, _ := Variant("spacious")
	if spacious.GapAfterHeader != 10 {
		t.Fatalf("spacious gap = %g", spacious.GapAfterHeader)
	}
	canonical, _ := Variant("")
	if diff := cmp.Diff(DefaultConfig(), canonical); diff != "" {
		t.Fatalf("canonical variant differs from default (-want +got):\n%s", diff)
	}
	if _, err := Variant("baroque"); err == nil {
		t.Fatalf("unknown variant should fail")
	}
}

func TestParseConfigOverlay(t *testing.T) {
	data := []byte(`{
  "pageSize": "A5",
  "margin": ["12mm", "1cm"],
  "verseFontSize": "12pt",
  "lineHeight": "1.5x",
  "verseColor": "#00f",
  "gapAfterVerse": "0.5cm",
  "headerLayout": "inline",
  "useCustomFont": true
}`)
	cfg, err := ParseConfig(data, DefaultConfig())
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := DefaultConfig()
	want.PageWidth, want.PageHeight = 148, 210
	want.Margin = Margin{Top: 12, Right: 10, Bottom: 12, Left: 10}
	want.VerseFontSize = 12
	want.LineHeight = 12 * 1.5 * PtToMm
	want.VerseColor = Color{R: 0, G: 0, B: 255}
	want.GapAfterVerse = 5
	want.HeaderLayout = HeaderInline
	want.UseCustomFont = true
	if diff := cmp.Diff(want, cfg, cmp.Comparer(eq)); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	base := DefaultConfig()
	for _, in := range []string{
		`{"pageSize": "B7"}`,
		`{"margin": ["200mm"]}`,
		`{"verseColor": "#12"}`,
		`{"headerLayout": "diagonal"}`,
		`{"ruleWidth": "thin"}`,
		`not json`,
	} {
		got, err := ParseConfig([]byte(in), base)
		if err == nil {
			t.Fatalf("expected error for %s", in)
		}
		if diff := cmp.Diff(base, got); diff != "" {
			t.Fatalf("failed parse must return base unchanged:\n%s", diff)
		}
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(`{"pageSize": "letter landscape"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !eq(cfg.PageWidth, 279.4) || !eq(cfg.PageHeight, 215.9) {
		t.Fatalf("landscape letter: %gx%g", cfg.PageWidth, cfg.PageHeight)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), DefaultConfig()); err == nil {
		t.Fatalf("missing file should fail")
	}
}

// TestResolveMarginVariants 验证 margin 支持 1、2、3、4+ 个值的语义。
func TestResolveMarginVariants(t *testing.T) {
	cases := []struct {
		in   []string
		want Margin
	}{
		{[]string{"10mm"}, Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{[]string{"10mm", "5mm"}, Margin{Top: 10, Right: 5, Bottom: 10, Left: 5}},
		{[]string{"12mm", "8mm", "6mm"}, Margin{Top: 12, Right: 8, Bottom: 6, Left: 8}},
		{[]string{"1cm", "5mm", "2cm", "3mm"}, Margin{Top: 10, Right: 5, Bottom: 20, Left: 3}},
		{[]string{"1mm", "2mm", "3mm", "4mm", "999mm"}, Margin{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, c := range cases {
		got, err := resolveMargin(c.in)
		if err != nil {
			t.Fatalf("resolveMargin(%v): %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got, cmp.Comparer(eq)); diff != "" {
			t.Fatalf("resolveMargin(%v) (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#ff0000": Red,
		"#C0C0C0": LightGray,
		"#666":    Gray,
		"black":   Black,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %+v, %v; want %+v", in, got, err, want)
		}
	}
}
