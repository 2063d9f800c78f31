package layout

import (
	"strings"
)

// pageCollector 按顺序收集页面；当前页始终是最后一页。
type pageCollector struct {
	width  float64
	height float64
	margin Margin
	pages  []Page
}

func (pc *pageCollector) newPage() *Page {
	pc.pages = append(pc.pages, Page{
		Width:  pc.width,
		Height: pc.height,
		Margin: pc.margin,
		Rules:  []Rule{},
		Texts:  []TextRun{},
	})
	return pc.curr()
}

func (pc *pageCollector) curr() *Page {
	if len(pc.pages) == 0 {
		return pc.newPage()
	}
	return &pc.pages[len(pc.pages)-1]
}

// contentBottom 为可用内容区域底部 = 页面高度 - 下边距。
func (pc *pageCollector) contentBottom() float64 {
	return pc.height - pc.margin.Bottom
}

// Engine 维护光标与页面集合，把标题、歌词等元素转换为绝对坐标的图元。
// 一个 Engine 只服务一次排版，不可在 goroutine 之间共享。
type Engine struct {
	cfg       Config
	ts        Typesetter
	collector *pageCollector
	x, y      float64
	// versesOnPage 记录当前页已绘制的歌词段数，用于判断是否允许分页。
	versesOnPage int
}

// NewEngine 创建排版引擎；ts 为空时使用 EstimateTypesetter。
func NewEngine(cfg Config, ts Typesetter) *Engine {
	if ts == nil {
		ts = EstimateTypesetter{}
	}
	return &Engine{
		cfg: cfg,
		ts:  ts,
		collector: &pageCollector{
			width:  cfg.PageWidth,
			height: cfg.PageHeight,
			margin: cfg.Margin,
		},
	}
}

// Config returns the geometry and style the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// NewPage 追加一页空白页，并将光标重置到 (左边距, 上边距)。
func (e *Engine) NewPage() *Page {
	p := e.collector.newPage()
	e.x = e.cfg.Margin.Left
	e.y = e.cfg.Margin.Top
	e.versesOnPage = 0
	return p
}

func (e *Engine) page() *Page {
	if len(e.collector.pages) == 0 {
		return e.NewPage()
	}
	return e.collector.curr()
}

// CurrentX 返回光标横坐标。
func (e *Engine) CurrentX() float64 { return e.x }

// CurrentY 返回光标纵坐标。
func (e *Engine) CurrentY() float64 { return e.y }

// SetY 直接移动光标，仅用于歌词线贴合文本底边的回退。
func (e *Engine) SetY(y float64) { e.y = y }

// Advance 将光标下移 dy。
func (e *Engine) Advance(dy float64) { e.y += dy }

// Document 返回目前为止排好的文档。
func (e *Engine) Document() *Document {
	pages := make([]Page, len(e.collector.pages))
	copy(pages, e.collector.pages)
	return &Document{Pages: pages}
}

// HorizontalRule 在光标处绘制一条贯穿可打印宽度的横线，不移动光标。
func (e *Engine) HorizontalRule(kind RuleKind, color Color, width float64) Rule {
	p := e.page()
	r := Rule{
		Kind:   kind,
		Y:      e.y,
		XStart: e.cfg.Margin.Left,
		XEnd:   e.cfg.PageWidth - e.cfg.Margin.Right,
		Color:  color,
		Width:  width,
	}
	p.Rules = append(p.Rules, r)
	return r
}

// Measure 清理并折行文本，返回折行结果与总高度（行数 × 行高）。
func (e *Engine) Measure(text string, font Font, width, lineHeight float64) ([]TextLine, float64) {
	lines := e.ts.LayoutLines(e.ts.Sanitize(text), width, font)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	return lines, float64(len(lines)) * lineHeight
}

// TextBlock 在 (x, 光标) 处放置一个文本块并按其高度下移光标。
// width 为 0 时占满从 x 到右边距的剩余宽度。
func (e *Engine) TextBlock(role TextRole, text string, x, width, lineHeight float64, font Font, color Color, align Align) TextRun {
	wrapWidth := width
	if wrapWidth <= 0 {
		wrapWidth = e.cfg.PageWidth - e.cfg.Margin.Right - x
	}
	lines, height := e.Measure(text, font, wrapWidth, lineHeight)
	run := TextRun{
		Role:       role,
		Content:    e.ts.Sanitize(text),
		Lines:      lines,
		X:          x,
		Y:          e.y,
		Width:      wrapWidth,
		Height:     height,
		LineHeight: lineHeight,
		Font:       font,
		Color:      color,
		Align:      align,
	}
	p := e.page()
	p.Texts = append(p.Texts, run)
	e.y += height
	return run
}

// RenderHeader 绘制标题、作者与分隔线，结束后光标位于首段歌词的位置。
func (e *Engine) RenderHeader(title, author string) {
	e.page()
	if strings.TrimSpace(title) == "" {
		title = e.cfg.DefaultTitle
	}
	titleFont := Font{Family: e.cfg.FontFamily, Style: StyleBoldItalic, Size: e.cfg.TitleFontSize}
	authorFont := Font{Family: e.cfg.FontFamily, Style: StyleItalic, Size: e.cfg.AuthorFontSize}
	left := e.cfg.Margin.Left
	printable := e.cfg.PrintableWidth()

	author = e.fitLine(author, authorFont, printable)

	switch e.cfg.HeaderLayout {
	case HeaderInline:
		// 标题与作者共用一行：标题只能用到作者左侧留白之前
		authorWidth := e.lineWidth(author, authorFont)
		room := printable
		if authorWidth > 0 {
			room = printable - authorWidth - e.cfg.TitlePadding
		}
		title = e.fitLine(title, titleFont, room)
		top := e.y
		e.placeLine(RoleTitle, title, left, printable, e.cfg.TitleHeight, titleFont, e.cfg.TitleColor, AlignLeft)
		e.y = top
		e.placeLine(RoleAuthor, author, left, printable, e.cfg.TitleHeight, authorFont, e.cfg.AuthorColor, AlignRight)
	default:
		title = e.fitLine(title, titleFont, printable)
		// 标题单元格宽度 = 测量宽度 + 留白，居中放置
		w := e.lineWidth(title, titleFont) + e.cfg.TitlePadding
		if w > printable {
			w = printable
		}
		x := (e.cfg.PageWidth - w) / 2
		e.placeLine(RoleTitle, title, x, w, e.cfg.TitleHeight, titleFont, e.cfg.TitleColor, AlignCenter)
		e.placeLine(RoleAuthor, author, left, printable, e.cfg.AuthorHeight, authorFont, e.cfg.AuthorColor, AlignCenter)
	}

	e.Advance(e.cfg.GapBeforeDivider)
	e.HorizontalRule(RuleDivider, e.cfg.DividerColor, e.cfg.DividerWidth)
	e.Advance(e.cfg.GapAfterHeader)
}

// placeLine 放置一个不折行的单行文本单元格，光标下移 height。
func (e *Engine) placeLine(role TextRole, text string, x, width, height float64, font Font, color Color, align Align) {
	clean := e.ts.Sanitize(text)
	run := TextRun{
		Role:       role,
		Content:    clean,
		Lines:      []TextLine{{Content: clean, Width: e.lineWidth(clean, font)}},
		X:          x,
		Y:          e.y,
		Width:      width,
		Height:     height,
		LineHeight: height,
		Font:       font,
		Color:      color,
		Align:      align,
	}
	p := e.page()
	p.Texts = append(p.Texts, run)
	e.y += height
}

func (e *Engine) lineWidth(text string, font Font) float64 {
	lines := e.ts.LayoutLines(e.ts.Sanitize(text), 0, font)
	widest := 0.0
	for _, l := range lines {
		if l.Width > widest {
			widest = l.Width
		}
	}
	return widest
}

// fitLine 保留单行文本左侧能放入 room 宽度的部分。
func (e *Engine) fitLine(text string, font Font, room float64) string {
	clean := e.ts.Sanitize(text)
	if e.lineWidth(clean, font) <= room {
		return clean
	}
	if room <= 0 {
		return ""
	}
	runes := []rune(clean)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.lineWidth(string(runes[:mid]), font) <= room {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:lo]), " ")
}

func (e *Engine) verseFont() Font {
	return Font{Family: e.cfg.FontFamily, Style: StylePlain, Size: e.cfg.VerseFontSize}
}

// VerseAdvance 返回一段 n 行歌词使光标前进的总距离。
func (e *Engine) VerseAdvance(lines int) float64 {
	return e.cfg.NoteGap + float64(lines)*e.cfg.LineHeight - e.cfg.Tuck() + e.cfg.GapAfterVerse
}

// verseBlockHeight 为黑线到歌词线（含线宽）的可见高度。
func (e *Engine) verseBlockHeight(lines int) float64 {
	return e.cfg.NoteGap + float64(lines)*e.cfg.LineHeight - e.cfg.Tuck() + e.cfg.RuleWidth
}

// RenderVerse 绘制一个五线谱段落：黑线、歌词、贴合歌词的彩色线，然后留出段后间距。
// 若整段放不下且本页已有歌词，则先换页。
func (e *Engine) RenderVerse(text string) {
	e.page()
	font := e.verseFont()
	width := e.cfg.PrintableWidth()
	lines, _ := e.Measure(text, font, width, e.cfg.LineHeight)
	if e.versesOnPage > 0 && e.y+e.verseBlockHeight(len(lines)) > e.collector.contentBottom() {
		e.NewPage()
	}

	e.HorizontalRule(RuleNote, e.cfg.NoteRuleColor, e.cfg.RuleWidth)
	e.Advance(e.cfg.NoteGap)

	run := e.TextBlock(RoleVerse, text, e.cfg.Margin.Left, width, e.cfg.LineHeight, font, e.cfg.VerseColor, AlignLeft)

	// 回退到字形底边再画歌词线，回退量小于一行且不会越过文本顶部
	e.SetY(run.Y + run.Height - e.cfg.Tuck())
	e.HorizontalRule(RuleLyric, e.cfg.LyricRuleColor, e.cfg.RuleWidth)
	e.Advance(e.cfg.GapAfterVerse)
	e.versesOnPage++
}

// RenderNotice 绘制一行居中的灰色斜体提示。
func (e *Engine) RenderNotice(text string) {
	font := Font{Family: e.cfg.FontFamily, Style: StyleItalic, Size: e.cfg.NoticeFontSize}
	e.page()
	e.TextBlock(RoleNotice, text, e.cfg.Margin.Left, e.cfg.PrintableWidth(), e.cfg.LineHeight, font, e.cfg.AuthorColor, AlignCenter)
}
