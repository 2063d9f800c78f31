package compose

import (
	"log"

	"github.com/ByLCY/pauta/layout"
)

// 页面上显示的提示文本。
const (
	NoticeNoLyrics = "this song has no lyrics"
	NoticeNoSongs  = "no songs to render"
)

// Creator is written into the document metadata.
const Creator = "pauta"

// Composer 按顺序把多首歌排进同一份文档。
// Composer 本身不保存排版状态，每次 Compose 都会创建新的 Engine，可以并发调用
// （前提是传入的 Typesetter 可以并发使用）。
type Composer struct {
	cfg    layout.Config
	ts     layout.Typesetter
	logger *log.Logger
	meta   layout.DocumentMeta
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger 设置日志输出，默认使用 log.Default()。
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMeta 设置文档元信息中的 Subject 与 Keywords；Title/Author 始终取自第一首歌。
func WithMeta(meta layout.DocumentMeta) Option {
	return func(c *Composer) { c.meta = meta }
}

// New 创建 Composer；ts 为空时使用 layout.EstimateTypesetter。
func New(cfg layout.Config, ts layout.Typesetter, opts ...Option) *Composer {
	c := &Composer{cfg: cfg, ts: ts, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the layout configuration used for every composition.
func (c *Composer) Config() layout.Config { return c.cfg }

// Compose 为每首歌新起一页：页眉，然后按顺序排列每个歌词块的每一行，块与块之间
// 额外留出 GapBetweenBlocks。没有歌词的歌曲输出一行提示；没有任何歌曲时输出
// 只含提示的一页。结果至少包含一页。
func (c *Composer) Compose(songs []Song) *layout.Document {
	e := layout.NewEngine(c.cfg, c.ts)

	if len(songs) == 0 {
		e.NewPage()
		e.RenderNotice(NoticeNoSongs)
		doc := e.Document()
		doc.Meta = c.documentMeta(nil)
		return doc
	}

	for _, song := range songs {
		e.NewPage()
		e.RenderHeader(song.Title, song.Author)

		rendered := 0
		for _, block := range song.Blocks {
			if len(block.Verses) == 0 {
				continue
			}
			if rendered > 0 {
				e.Advance(c.cfg.GapBetweenBlocks)
			}
			for _, verse := range block.Verses {
				e.RenderVerse(verse)
				rendered++
			}
		}
		if rendered == 0 {
			c.logger.Printf("歌曲 %q 没有歌词，输出提示行", song.Title)
			e.RenderNotice(NoticeNoLyrics)
		}
	}

	doc := e.Document()
	doc.Meta = c.documentMeta(songs)
	return doc
}

func (c *Composer) documentMeta(songs []Song) layout.DocumentMeta {
	meta := c.meta
	meta.Creator = Creator
	meta.Title = c.cfg.DefaultTitle
	meta.Author = ""
	if len(songs) > 0 {
		if songs[0].Title != "" {
			meta.Title = songs[0].Title
		}
		meta.Author = songs[0].Author
	}
	if len(meta.Keywords) > 0 {
		meta.Keywords = append([]string(nil), meta.Keywords...)
	}
	return meta
}
