package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ByLCY/pauta/binding"
	"github.com/ByLCY/pauta/dsl"
	"github.com/ByLCY/pauta/layout"
)

// FromSongbook 把解析后的歌谱转换为歌曲列表；标题、作者与歌词中的 ${path}
// 占位符用 data 填充。
func FromSongbook(book *dsl.Songbook, data any) []Song {
	if book == nil {
		return nil
	}
	var songs []Song
	for _, s := range book.Songs() {
		song := Song{
			Title:  binding.Interpolate(s.Field("title"), data),
			Author: binding.Interpolate(s.Field("author"), data),
		}
		for _, b := range s.Blocks() {
			song.Blocks = append(song.Blocks, Block{
				Label:  b.Label,
				Verses: SplitVerses(binding.Interpolate(b.Text, data)),
			})
		}
		songs = append(songs, song)
	}
	return songs
}

// MetaFromSongbook 返回歌谱级别的元信息（Subject、Keywords），用于 WithMeta。
func MetaFromSongbook(book *dsl.Songbook, data any) layout.DocumentMeta {
	if book == nil {
		return layout.DocumentMeta{}
	}
	subject := book.Meta("subject")
	if subject == "" {
		subject = string(book.Name)
	}
	var keywords []string
	for _, k := range book.Keywords() {
		keywords = append(keywords, binding.Interpolate(k, data))
	}
	return layout.DocumentMeta{
		Subject:  binding.Interpolate(subject, data),
		Keywords: keywords,
	}
}

// jsonSong 是 JSON 输入的形态：lyrics 为整段文本，blocks 为多段文本或带标签的对象。
type jsonSong struct {
	Title  string      `json:"title"`
	Author string      `json:"author"`
	Lyrics string      `json:"lyrics"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// UnmarshalJSON 接受 "text" 或 {"label": "...", "text": "..."}。
func (b *jsonBlock) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Text)
	}
	type plain jsonBlock
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = jsonBlock(p)
	return nil
}

// DecodeJSON 读取一首歌（对象）或多首歌（数组）。lyrics 与 blocks 同时出现时，
// lyrics 作为第一个歌词块。
func DecodeJSON(r io.Reader) ([]Song, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取歌曲 JSON 失败: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	var items []jsonSong
	if len(raw) > 0 && raw[0] == '{' {
		var one jsonSong
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("解析歌曲 JSON 失败: %w", err)
		}
		items = []jsonSong{one}
	} else if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("解析歌曲 JSON 失败: %w", err)
	}

	songs := make([]Song, 0, len(items))
	for _, it := range items {
		song := Song{Title: it.Title, Author: it.Author}
		if it.Lyrics != "" || len(it.Blocks) == 0 {
			song.Blocks = append(song.Blocks, Block{Verses: SplitVerses(it.Lyrics)})
		}
		for _, b := range it.Blocks {
			song.Blocks = append(song.Blocks, Block{Label: b.Label, Verses: SplitVerses(b.Text)})
		}
		songs = append(songs, song)
	}
	return songs, nil
}
