package compose

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/pauta/dsl"
)

func TestFromSongbook(t *testing.T) {
	book, err := dsl.ParseString(`
songbook "Cantigas" {
  keywords: ["roda", "${kind}"]
  song {
    title: "Estrelinha"
    author: "${composer|Anônimo}"
    block verse {
      "Brilha, brilha, estrelinha"
      ""
      "Quero ver você brilhar"
    }
    "Faz de conta"
  }
}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data := map[string]any{"kind": "infantil"}

	want := []Song{{
		Title:  "Estrelinha",
		Author: "Anônimo",
		Blocks: []Block{
			{Label: "verse", Verses: []string{"Brilha, brilha, estrelinha", "Quero ver você brilhar"}},
			{Verses: []string{"Faz de conta"}},
		},
	}}
	if diff := cmp.Diff(want, FromSongbook(book, data)); diff != "" {
		t.Fatalf("songs (-want +got):\n%s", diff)
	}

	meta := MetaFromSongbook(book, data)
	if meta.Subject != "Cantigas" {
		t.Fatalf("subject should default to the songbook name, got %q", meta.Subject)
	}
	if diff := cmp.Diff([]string{"roda", "infantil"}, meta.Keywords); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
	if FromSongbook(nil, nil) != nil {
		t.Fatalf("nil songbook should yield no songs")
	}
}

func TestDecodeJSON(t *testing.T) {
	in := `[
  {"title": "Um", "author": "A", "lyrics": "a\n\nb"},
  {"title": "Dois", "blocks": ["c\nd", {"label": "chorus", "text": "e"}]},
  {"title": "Três"}
]`
	songs, err := DecodeJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	want := []Song{
		{Title: "Um", Author: "A", Blocks: []Block{{Verses: []string{"a", "b"}}}},
		{Title: "Dois", Blocks: []Block{{Verses: []string{"c", "d"}}, {Label: "chorus", Verses: []string{"e"}}}},
		{Title: "Três", Blocks: []Block{{}}},
	}
	if diff := cmp.Diff(want, songs); diff != "" {
		t.Fatalf("songs (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONSingleObject(t *testing.T) {
	songs, err := DecodeJSON(strings.NewReader(` {"title": "Só", "lyrics": "x"}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Só" {
		t.Fatalf("unexpected songs: %+v", songs)
	}
	if _, err := DecodeJSON(strings.NewReader(`{"title": 3}`)); err == nil {
		t.Fatalf("type mismatch should fail")
	}
}
