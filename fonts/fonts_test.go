package fonts

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/pauta/layout"
)

func TestResolveEmptyPathUsesBuiltin(t *testing.T) {
	var buf bytes.Buffer
	set := Resolve("", log.New(&buf, "", 0))
	if set.Custom || set.Family != BuiltinFamily {
		t.Fatalf("expected builtin set, got %+v", set.Family)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty path should not log, got %q", buf.String())
	}
}

func TestResolveMissingFileFallsBack(t *testing.T) {
	var buf bytes.Buffer
	set := Resolve(filepath.Join(t.TempDir(), "nope.ttf"), log.New(&buf, "", 0))
	if set.Custom {
		t.Fatalf("missing font must not be marked custom")
	}
	if !bytes.Equal(set.Regular, goregular.TTF) {
		t.Fatalf("fallback should carry Go Regular")
	}
	if !strings.Contains(buf.String(), "nope.ttf") {
		t.Fatalf("fallback should be logged, got %q", buf.String())
	}
}

func TestResolveRejectsNonFontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.ttf")
	if err := os.WriteFile(path, []byte("definitely not a font file"), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if set := Resolve(path, log.New(&buf, "", 0)); set.Custom {
		t.Fatalf("text file accepted as font")
	}
}

func TestResolveCustomFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MyFace.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	set := Resolve(path, nil)
	if !set.Custom || set.Family != "MyFace" || set.Path != path {
		t.Fatalf("unexpected custom set: custom=%v family=%q", set.Custom, set.Family)
	}
	if !bytes.Equal(set.Face(layout.StyleBoldItalic), goregular.TTF) {
		t.Fatalf("custom font should serve every style")
	}
}

func TestResolvePicksUpStyleSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MyFace-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "MyFace-Italic.ttf"), goitalic.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "MyFace-Bold.ttf"), []byte("not a font at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	set := Resolve(path, log.New(&buf, "", 0))
	if !bytes.Equal(set.Face(layout.StyleItalic), goitalic.TTF) {
		t.Fatalf("italic sibling should be used")
	}
	if !bytes.Equal(set.Face(layout.StyleBold), goregular.TTF) {
		t.Fatalf("invalid bold sibling should fall back to regular")
	}
	if !bytes.Equal(set.Face(layout.StyleBoldItalic), goregular.TTF) {
		t.Fatalf("missing bold italic sibling should fall back to regular")
	}
	if !strings.Contains(buf.String(), "MyFace-Bold.ttf") {
		t.Fatalf("invalid sibling should be logged, got %q", buf.String())
	}
}

func TestFaceSelectsStyle(t *testing.T) {
	set := Builtin()
	if !bytes.Equal(set.Face(layout.StyleItalic), goitalic.TTF) {
		t.Fatalf("italic face mismatch")
	}
	if !bytes.Equal(set.Face(layout.StylePlain), goregular.TTF) {
		t.Fatalf("regular face mismatch")
	}
}
