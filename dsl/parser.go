package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "RawString", Pattern: "`[^`]*`"},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	songbookParser = participle.MustBuild[Songbook](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Songbook is the root AST node of a songbook file.
type Songbook struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"Newline* 'songbook' @String"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is either a song or a songbook-level assignment (subject, keywords...).
type Entry struct {
	Song       *Song       `parser:"  @@"`
	Assignment *Assignment `parser:"| @@"`
}

// Song groups header assignments and lyric statements.
type Song struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Statements []*Statement   `parser:"'song' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a song body.
type Statement struct {
	Block      *LyricBlock  `parser:"  @@"`
	Assignment *Assignment  `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value is a string, a raw string or a list of strings.
type Value struct {
	Text  *TextLiteral `parser:"  @@"`
	Array *ArrayValue  `parser:"| @@"`
}

// String returns the scalar form of the value; arrays are joined by ", ".
func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Text != nil:
		return v.Text.String()
	case v.Array != nil:
		return strings.Join(v.Array.Strings(), ", ")
	default:
		return ""
	}
}

// ArrayValue captures `[ ... ]` lists.
type ArrayValue struct {
	Values []*TextLiteral `parser:"'[' Newline* ( @@ ( (',' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Strings returns the list items in order.
func (a *ArrayValue) Strings() []string {
	out := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		out = append(out, v.String())
	}
	return out
}

// LyricBlock is `block [label] { "line" ... }` or `block [label] "text"`.
type LyricBlock struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Label string         `parser:"'block' @Ident?"`
	Body  *BlockBody     `parser:"@@"`
}

// BlockBody is either a braced list of lyric lines or a single literal.
type BlockBody struct {
	Lines []*TextLiteral `parser:"  '{' Newline* ( @@ ( ',' | ';' | Newline )* )* '}'"`
	Text  *TextLiteral   `parser:"| @@"`
}

// TextLiteral is either a quoted or a backtick string.
type TextLiteral struct {
	Quoted *StringLiteral `parser:"  @String"`
	Raw    *RawLiteral    `parser:"| @RawString"`
}

func (t *TextLiteral) String() string {
	switch {
	case t == nil:
		return ""
	case t.Quoted != nil:
		return string(*t.Quoted)
	case t.Raw != nil:
		return string(*t.Raw)
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// RawLiteral strips the backticks and the indentation of every line.
type RawLiteral string

// Capture implements participle.Capture.
func (s *RawLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("raw literal capture requires value")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(values[0], "`"), "`")
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	*s = RawLiteral(strings.Trim(strings.Join(lines, "\n"), "\n"))
	return nil
}

// Parse parses songbook content from an io.Reader.
func Parse(r io.Reader) (*Songbook, error) {
	return songbookParser.Parse("", r)
}

// ParseString parses songbook content from a string.
func ParseString(input string) (*Songbook, error) {
	return songbookParser.ParseString("", input)
}
