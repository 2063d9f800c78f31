package compose

import "strings"

// Block 是一段独立编辑的歌词（主歌、副歌、桥段……），Verses 已经过切分。
type Block struct {
	Label  string   `json:"label,omitempty"`
	Verses []string `json:"verses"`
}

// Song 是一首歌：标题、作者与按顺序排列的歌词块。交给 Composer 之后不应再修改。
type Song struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Blocks []Block `json:"blocks"`
}

// SplitVerses 按换行切分原始歌词，去掉首尾空白并丢弃空行；顺序与重复行保持不变。
func SplitVerses(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var verses []string
	for _, line := range strings.Split(raw, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			verses = append(verses, v)
		}
	}
	return verses
}

// NewSong 由一整段歌词文本创建只有一个歌词块的歌曲。
func NewSong(title, author, lyrics string) Song {
	return Song{
		Title:  title,
		Author: author,
		Blocks: []Block{{Verses: SplitVerses(lyrics)}},
	}
}

// NewSongFromBlocks 按给定顺序把每段文本变成一个歌词块。
func NewSongFromBlocks(title, author string, blocks ...string) Song {
	s := Song{Title: title, Author: author}
	for _, b := range blocks {
		s.Blocks = append(s.Blocks, Block{Verses: SplitVerses(b)})
	}
	return s
}

// Verses 按块的顺序展开全部歌词行。
func (s Song) Verses() []string {
	var out []string
	for _, b := range s.Blocks {
		out = append(out, b.Verses...)
	}
	return out
}

// countVerses 统计所有歌曲的歌词行数。
func countVerses(songs []Song) int {
	n := 0
	for _, s := range songs {
		for _, b := range s.Blocks {
			n += len(b.Verses)
		}
	}
	return n
}
