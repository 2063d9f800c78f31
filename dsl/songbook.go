package dsl

import "strings"

// Block is a lyric block extracted from a song: an optional label plus its raw text.
type Block struct {
	Label string
	Text  string
}

// Songs returns the songs of the songbook in source order.
func (b *Songbook) Songs() []*Song {
	var out []*Song
	for _, e := range b.Entries {
		if e.Song != nil {
			out = append(out, e.Song)
		}
	}
	return out
}

// Meta returns the last songbook-level value assigned to key.
func (b *Songbook) Meta(key string) string {
	var val string
	for _, e := range b.Entries {
		if a := e.Assignment; a != nil && strings.EqualFold(a.Key, key) {
			val = a.Value.String()
		}
	}
	return val
}

// Keywords returns the songbook-level `keywords` list.
func (b *Songbook) Keywords() []string {
	var out []string
	for _, e := range b.Entries {
		a := e.Assignment
		if a == nil || !strings.EqualFold(a.Key, "keywords") {
			continue
		}
		if a.Value.Array != nil {
			out = append(out, a.Value.Array.Strings()...)
		} else {
			out = append(out, a.Value.String())
		}
	}
	return out
}

// Field returns the last value assigned to key inside the song (title, author...).
func (s *Song) Field(key string) string {
	var val string
	for _, st := range s.Statements {
		if a := st.Assignment; a != nil && strings.EqualFold(a.Key, key) {
			val = a.Value.String()
		}
	}
	return val
}

// Blocks returns the lyric blocks in source order. Consecutive bare strings
// merge into one unlabeled block; every `block` statement is its own block.
func (s *Song) Blocks() []Block {
	var out []Block
	var loose []string
	flush := func() {
		if len(loose) == 0 {
			return
		}
		out = append(out, Block{Text: strings.Join(loose, "\n")})
		loose = nil
	}
	for _, st := range s.Statements {
		switch {
		case st.Text != nil:
			loose = append(loose, st.Text.String())
		case st.Block != nil:
			flush()
			out = append(out, Block{Label: st.Block.Label, Text: st.Block.text()})
		}
	}
	flush()
	return out
}

func (b *LyricBlock) text() string {
	if b.Body == nil {
		return ""
	}
	if b.Body.Text != nil {
		return b.Body.Text.String()
	}
	lines := make([]string, 0, len(b.Body.Lines))
	for _, l := range b.Body.Lines {
		lines = append(lines, l.String())
	}
	return strings.Join(lines, "\n")
}
