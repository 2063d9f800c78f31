package charset

import "testing"

func TestWindows1252(t *testing.T) {
	s := Windows1252(Placeholder)
	cases := map[string]string{
		"Atirei o pau no gato":  "Atirei o pau no gato",
		"coração, ação":         "coração, ação",
		"cafe\u0301":            "caf\u00e9",
		"€ “aspas” — travessão": "€ “aspas” — travessão",
		"雪 ☃ snow":              "? ? snow",
		"tab\there":             "tab here",
		"a\r\nb":                "a\nb",
		"bell\a":                "bell?",
	}
	for in, want := range cases {
		if got := s.Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWindows1252IsIdempotent(t *testing.T) {
	s := Windows1252('#')
	in := "Ω ômega 🎵 nota"
	once := s.Sanitize(in)
	if once != "# ômega # nota" {
		t.Fatalf("unexpected first pass %q", once)
	}
	if twice := s.Sanitize(once); twice != once {
		t.Fatalf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestPrintable(t *testing.T) {
	s := Printable(Placeholder)
	if got := s.Sanitize("雪 ☃\x00"); got != "雪 ☃?" {
		t.Fatalf("Printable = %q", got)
	}
}
