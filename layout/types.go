package layout

// 该文件定义排版结果（页面、线条、文本块），供排版、渲染与调试 JSON 共用。
// 所有长度单位均为毫米（mm），字号单位为 pt。

// Document 保存排版后的全部页面与文档元信息。
type Document struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black     = Color{R: 0, G: 0, B: 0}
	Red       = Color{R: 255, G: 0, B: 0}
	Gray      = Color{R: 102, G: 102, B: 102}
	LightGray = Color{R: 192, G: 192, B: 192}
)

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Page 记录页面尺寸、边距与可以直接渲染的图元。
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Rules  []Rule    `json:"rules"`
	Texts  []TextRun `json:"texts"`
}

// PrintableWidth 返回左右边距之间的宽度。
func (p Page) PrintableWidth() float64 {
	return p.Width - p.Margin.Left - p.Margin.Right
}

// RuleKind 区分横线的用途。
type RuleKind string

const (
	RuleNote    RuleKind = "note"    // 每段歌词上方的黑线
	RuleLyric   RuleKind = "lyric"   // 紧贴歌词下方的彩色线
	RuleDivider RuleKind = "divider" // 页眉下方的分隔线
)

// Rule 是一条水平线段，XStart/XEnd 始终等于可打印区域的左右边界。
type Rule struct {
	Kind   RuleKind `json:"kind"`
	Y      float64  `json:"y"`
	XStart float64  `json:"xStart"`
	XEnd   float64  `json:"xEnd"`
	Color  Color    `json:"color"`
	Width  float64  `json:"width"` // 线宽（mm）
}

// TextRole 标记文本块在页面中的角色。
type TextRole string

const (
	RoleTitle  TextRole = "title"
	RoleAuthor TextRole = "author"
	RoleVerse  TextRole = "verse"
	RoleNotice TextRole = "notice"
)

// FontStyle 沿用 PDF 常见的样式写法："" / "B" / "I" / "BI"。
type FontStyle string

const (
	StylePlain      FontStyle = ""
	StyleBold       FontStyle = "B"
	StyleItalic     FontStyle = "I"
	StyleBoldItalic FontStyle = "BI"
)

// Bold reports whether the style carries a bold weight.
func (s FontStyle) Bold() bool { return s == StyleBold || s == StyleBoldItalic }

// Italic reports whether the style is slanted.
func (s FontStyle) Italic() bool { return s == StyleItalic || s == StyleBoldItalic }

// Font 描述文本使用的字体族、样式与字号（pt）。
type Font struct {
	Family string    `json:"family"`
	Style  FontStyle `json:"style,omitempty"`
	Size   float64   `json:"size"`
}

// SizeMM 返回字号对应的毫米高度。
func (f Font) SizeMM() float64 { return f.Size * PtToMm }

// Align 为文本块的水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextRun 表示一个已经排好坐标的文本块。
// Width 为 0 时表示占满剩余可打印宽度（折行文本块）。
type TextRun struct {
	Role       TextRole   `json:"role"`
	Content    string     `json:"content"`
	Lines      []TextLine `json:"lines"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	LineHeight float64    `json:"lineHeight"`
	Font       Font       `json:"font"`
	Color      Color      `json:"color"`
	Align      Align      `json:"align,omitempty"`
}

// TextLine 表示排版后的一行文本及其测量宽度（mm）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
