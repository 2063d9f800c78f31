package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ByLCY/pauta/charset"
	"github.com/ByLCY/pauta/fonts"
	"github.com/ByLCY/pauta/layout"
	"github.com/ByLCY/pauta/renderer"
)

// coreFamily 为 PDF 标准 14 字体中的 Times，不需要嵌入字体文件。
const coreFamily = "Times"

// utf8Family 为嵌入自定义字体时使用的族名。
const utf8Family = "PautaCustom"

// epoch 固定写入文档的创建与修改时间，使相同输入得到逐字节相同的输出。
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Renderer 使用 github.com/jung-kurt/gofpdf 输出 PDF。
// 默认使用 Times 核心字体（Windows-1252 字符集）；传入自定义字体时嵌入 UTF-8 字体。
type Renderer struct {
	set       fonts.Set
	sanitizer charset.Sanitizer

	// measure 仅用于测量字符串宽度，GetStringWidth 依赖当前字体状态，需要加锁。
	measureMu sync.Mutex
	measure   *gofpdf.Fpdf
	translate func(string) string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Backend  = (*Renderer)(nil)
)

// NewRenderer 创建渲染器；set.Custom 为 false 时使用核心字体。
func NewRenderer(set fonts.Set) (*Renderer, error) {
	r := &Renderer{set: set}
	m, err := r.newPdf(layout.DefaultConfig().PageWidth, layout.DefaultConfig().PageHeight)
	if err != nil {
		return nil, err
	}
	r.measure = m
	if set.Custom {
		r.sanitizer = charset.Printable(charset.Placeholder)
		r.translate = func(s string) string { return s }
	} else {
		r.sanitizer = charset.Windows1252(charset.Placeholder)
		r.translate = m.UnicodeTranslatorFromDescriptor("")
	}
	return r, nil
}

func (r *Renderer) family() string {
	if r.set.Custom {
		return utf8Family
	}
	return coreFamily
}

// newPdf 创建一个以毫米为单位、无边距、无自动分页的文档并注册字体。
func (r *Renderer) newPdf(width, height float64) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)
	pdf.SetCatalogSort(true)
	if r.set.Custom {
		for _, style := range []layout.FontStyle{layout.StylePlain, layout.StyleItalic, layout.StyleBold, layout.StyleBoldItalic} {
			pdf.AddUTF8FontFromBytes(utf8Family, string(style), r.set.Face(style))
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("初始化 PDF 字体失败: %w", err)
	}
	return pdf, nil
}

// Sanitize 实现 layout.Typesetter。
func (r *Renderer) Sanitize(text string) string { return r.sanitizer.Sanitize(text) }

// LayoutLines 实现 layout.Typesetter，宽度单位为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.Font) []layout.TextLine {
	r.measureMu.Lock()
	defer r.measureMu.Unlock()
	r.measure.SetFont(r.family(), string(font.Style), font.Size)
	return layout.WrapLines(content, width, func(s string) float64 {
		return r.measure.GetStringWidth(r.translate(s))
	})
}

// Render 将文档写为 PDF。
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	first := doc.Pages[0]
	pdf, err := r.newPdf(first.Width, first.Height)
	if err != nil {
		return nil, err
	}
	r.applyMeta(pdf, doc.Meta)

	for _, page := range doc.Pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for _, rl := range page.Rules {
			pdf.SetDrawColor(rl.Color.R, rl.Color.G, rl.Color.B)
			pdf.SetLineWidth(rl.Width)
			pdf.Line(rl.XStart, rl.Y, rl.XEnd, rl.Y)
		}
		for _, run := range page.Texts {
			r.drawText(pdf, run)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(pdf *gofpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, " "), true)
}

func (r *Renderer) drawText(pdf *gofpdf.Fpdf, run layout.TextRun) {
	pdf.SetFont(r.family(), string(run.Font.Style), run.Font.Size)
	pdf.SetTextColor(run.Color.R, run.Color.G, run.Color.B)

	lines := run.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: run.Content}}
	}
	// Text 的 y 为基线：行中线再下移约 0.3 个字号
	sizeMM := run.Font.SizeMM()
	top := run.Y
	for _, line := range lines {
		if line.Content != "" {
			s := r.translate(line.Content)
			w := pdf.GetStringWidth(s)
			x := run.X
			switch run.Align {
			case layout.AlignCenter:
				x = run.X + (run.Width-w)/2
			case layout.AlignRight:
				x = run.X + run.Width - w
			}
			pdf.Text(x, top+run.LineHeight/2+0.3*sizeMM, s)
		}
		top += run.LineHeight
	}
}
