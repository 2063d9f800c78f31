package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/pauta/charset"
	"github.com/ByLCY/pauta/fonts"
	"github.com/ByLCY/pauta/layout"
	"github.com/ByLCY/pauta/renderer"
)

// Renderer draws layout documents via github.com/tdewolff/canvas and measures
// text with the same font faces, so wrapped lines match the output.
type Renderer struct {
	set       fonts.Set
	family    *canvas.FontFamily
	sanitizer charset.Sanitizer

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Backend  = (*Renderer)(nil)
)

type faceKey struct {
	style layout.FontStyle
	size  float64
	color layout.Color
}

// NewRenderer loads the four faces of set into a canvas font family.
func NewRenderer(set fonts.Set) (*Renderer, error) {
	name := set.Family
	if name == "" {
		name = fonts.BuiltinFamily
	}
	family := canvas.NewFontFamily(name)
	styles := []struct {
		style layout.FontStyle
		cs    canvas.FontStyle
	}{
		{layout.StylePlain, canvas.FontRegular},
		{layout.StyleItalic, canvas.FontRegular | canvas.FontItalic},
		{layout.StyleBold, canvas.FontBold},
		{layout.StyleBoldItalic, canvas.FontBold | canvas.FontItalic},
	}
	for _, s := range styles {
		data := set.Face(s.style)
		if len(data) == 0 {
			return nil, fmt.Errorf("字体 %s 缺少样式 %q", name, s.style)
		}
		if err := family.LoadFont(data, 0, s.cs); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
		}
	}
	return &Renderer{
		set:       set,
		family:    family,
		sanitizer: charset.Printable(charset.Placeholder),
		faces:     map[faceKey]*canvas.FontFace{},
	}, nil
}

// Sanitize 实现 layout.Typesetter：Unicode 字体可以显示所有可打印字符。
func (r *Renderer) Sanitize(text string) string { return r.sanitizer.Sanitize(text) }

// LayoutLines 实现 layout.Typesetter，宽度单位为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.Font) []layout.TextLine {
	face := r.face(font, layout.Black)
	return layout.WrapLines(content, width, face.TextWidth)
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, doc.Pages[0].Width, doc.Pages[0].Height, nil)
	applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

		r.drawRules(ctx, page.Rules)
		for _, run := range page.Texts {
			r.drawText(ctx, run)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawRules 绘制水平线（毫米单位）
func (r *Renderer) drawRules(ctx *canvas.Context, rules []layout.Rule) {
	for _, rl := range rules {
		ctx.SetStrokeColor(colorFromLayout(rl.Color))
		ctx.SetStrokeWidth(rl.Width)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(rl.XEnd-rl.XStart, 0)
		ctx.DrawPath(rl.XStart, rl.Y, p)
	}
}

func (r *Renderer) drawText(ctx *canvas.Context, run layout.TextRun) {
	face := r.face(run.Font, run.Color)

	var textAlign canvas.TextAlign
	var anchorX float64
	switch run.Align {
	case layout.AlignCenter:
		textAlign = canvas.Center
		anchorX = run.X + run.Width/2
	case layout.AlignRight:
		textAlign = canvas.Right
		anchorX = run.X + run.Width
	default:
		textAlign = canvas.Left
		anchorX = run.X
	}

	lines := run.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: run.Content}}
	}
	metrics := face.Metrics()
	// 字形在行高内垂直居中，基线 = 行顶 + 留白 + 上升部
	glyph := metrics.Ascent + metrics.Descent
	offset := (run.LineHeight-glyph)/2 + metrics.Ascent

	cursorY := run.Y
	for _, line := range lines {
		if line.Content != "" {
			ctx.DrawText(anchorX, cursorY+offset, canvas.NewTextLine(face, line.Content, textAlign))
		}
		cursorY += run.LineHeight
	}
}

func (r *Renderer) face(font layout.Font, col layout.Color) *canvas.FontFace {
	key := faceKey{style: font.Style, size: font.Size, color: col}
	r.faceMu.Lock()
	defer r.faceMu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(font.Size, colorFromLayout(col), canvasStyle(font.Style), canvas.FontNormal)
	r.faces[key] = f
	return f
}

func canvasStyle(style layout.FontStyle) canvas.FontStyle {
	result := canvas.FontRegular
	if style.Bold() {
		result = canvas.FontBold
	}
	if style.Italic() {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
