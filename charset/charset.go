// Package charset restricts text to what a given output encoding can show.
package charset

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Placeholder replaces characters that cannot be represented.
const Placeholder = '?'

// Sanitizer maps arbitrary UTF-8 text into a printable subset.
type Sanitizer interface {
	Sanitize(text string) string
}

// Func adapts a plain function to Sanitizer.
type Func func(string) string

func (f Func) Sanitize(text string) string { return f(text) }

// Windows1252 keeps only runes encodable in cp1252, the encoding used by the
// core PDF fonts. Text is NFC-normalized first so that combining sequences
// like "é" collapse into a single encodable rune.
func Windows1252(placeholder rune) Sanitizer {
	enc := charmap.Windows1252
	return Func(func(text string) string {
		return mapRunes(norm.NFC.String(text), placeholder, func(r rune) bool {
			_, ok := enc.EncodeRune(r)
			return ok
		})
	})
}

// Printable keeps every printable rune; used by backends with full Unicode fonts.
func Printable(placeholder rune) Sanitizer {
	return Func(func(text string) string {
		return mapRunes(norm.NFC.String(text), placeholder, func(r rune) bool {
			return unicode.IsPrint(r)
		})
	})
}

// mapRunes keeps newlines, turns other whitespace into a plain space and
// replaces everything rejected by keep with placeholder.
func mapRunes(text string, placeholder rune, keep func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\r':
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
			b.WriteRune(placeholder)
		case keep(r):
			b.WriteRune(r)
		default:
			b.WriteRune(placeholder)
		}
	}
	return b.String()
}
