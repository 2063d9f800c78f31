package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 10, 18, 72, 144, 1000}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		if math.Abs(back-pt) > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g", pt, back)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
		unit   Unit
	}{
		{"10mm", 10, UnitMM},
		{"2.54cm", 25.4, UnitCM},
		{"1in", 25.4, UnitIN},
		{"18pt", 18 * PtToMm, UnitPT},
		{" 7 ", 7, UnitNone},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", c.in, err)
		}
		if l.Unit != c.unit {
			t.Fatalf("ParseLength(%q) unit = %v, want %v", c.in, l.Unit, c.unit)
		}
		if got := l.ToMM(); math.Abs(got-c.wantMM) > 1e-9 {
			t.Fatalf("ParseLength(%q).ToMM() = %g, want %g", c.in, got, c.wantMM)
		}
	}
	for _, bad := range []string{"", "mm", "abc", "-3mm"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) should fail", bad)
		}
	}
	if got := (Length{Value: 18, Unit: UnitNone}).ToPT(); got != 18 {
		t.Fatalf("unit-less font size should stay in pt, got %g", got)
	}
	if got := (Length{Value: 10, Unit: UnitMM}).String(); got != "10mm" {
		t.Fatalf("String() = %q", got)
	}
}

// TestLineHeightResolve 验证行高解析：倍数与绝对值两种语义。
func TestLineHeightResolve(t *testing.T) {
	factor, err := ParseLineHeight("1.4x")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := factor.ResolveMM(10), 10*1.4*PtToMm; math.Abs(got-want) > 1e-9 {
		t.Fatalf("1.4x: got=%g want=%g", got, want)
	}
	abs, err := ParseLineHeight("5mm")
	if err != nil {
		t.Fatal(err)
	}
	if got := abs.ResolveMM(10); math.Abs(got-5) > 1e-9 {
		t.Fatalf("5mm: got=%g", got)
	}
	if _, err := ParseLineHeight("0x"); err == nil {
		t.Fatalf("0x should be rejected")
	}
}
