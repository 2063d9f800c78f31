package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// HeaderLayout 控制页眉中标题与作者的排布方式。
type HeaderLayout string

const (
	HeaderStacked HeaderLayout = "stacked" // 标题居中，作者居中位于其下
	HeaderInline  HeaderLayout = "inline"  // 标题居左，作者居右，同一行
)

// Config 汇总页面几何与样式常量，整个文档内保持不变。
type Config struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
	Margin     Margin  `json:"margin"`

	FontFamily     string  `json:"fontFamily"`
	TitleFontSize  float64 `json:"titleFontSize"`  // pt
	AuthorFontSize float64 `json:"authorFontSize"` // pt
	VerseFontSize  float64 `json:"verseFontSize"`  // pt
	NoticeFontSize float64 `json:"noticeFontSize"` // pt

	TitleColor  Color `json:"titleColor"`
	AuthorColor Color `json:"authorColor"`
	VerseColor  Color `json:"verseColor"`

	NoteRuleColor    Color   `json:"noteRuleColor"`
	LyricRuleColor   Color   `json:"lyricRuleColor"`
	DividerColor     Color   `json:"dividerColor"`
	RuleWidth        float64 `json:"ruleWidth"`
	DividerWidth     float64 `json:"dividerWidth"`
	TitleHeight      float64 `json:"titleHeight"`      // 标题单元格高度
	TitlePadding     float64 `json:"titlePadding"`     // 标题测量宽度之外的留白
	AuthorHeight     float64 `json:"authorHeight"`     // 作者单元格高度
	GapBeforeDivider float64 `json:"gapBeforeDivider"` // 作者与分隔线之间
	GapAfterHeader   float64 `json:"gapAfterHeader"`
	NoteGap          float64 `json:"noteGap"`    // 黑线到歌词顶部
	LineHeight       float64 `json:"lineHeight"` // 歌词行高
	GapAfterVerse    float64 `json:"gapAfterVerse"`
	GapBetweenBlocks float64 `json:"gapBetweenBlocks"`

	HeaderLayout  HeaderLayout `json:"headerLayout"`
	DefaultTitle  string       `json:"defaultTitle"`
	UseCustomFont bool         `json:"useCustomFont"`
}

// DefaultConfig 返回 A4 竖版、左右 10mm 边距的标准配置（红色歌词线）。
func DefaultConfig() Config {
	return Config{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     Margin{Top: 10, Right: 10, Bottom: 20, Left: 10},

		FontFamily:     "Times",
		TitleFontSize:  18,
		AuthorFontSize: 10,
		VerseFontSize:  10,
		NoticeFontSize: 10,

		TitleColor:  Black,
		AuthorColor: Gray,
		VerseColor:  Red,

		NoteRuleColor:    Black,
		LyricRuleColor:   Red,
		DividerColor:     LightGray,
		RuleWidth:        0.13,
		DividerWidth:     0.1,
		TitleHeight:      9,
		TitlePadding:     6,
		AuthorHeight:     5,
		GapBeforeDivider: 5,
		GapAfterHeader:   5,
		NoteGap:          5,
		LineHeight:       5,
		GapAfterVerse:    8,
		GapBetweenBlocks: 10,

		HeaderLayout: HeaderStacked,
		DefaultTitle: "Untitled",
	}
}

// Variants lists the built-in style presets by name.
var Variants = []string{"canonical", "plain", "spacious", "inline"}

// Variant 返回命名的预设配置。
func Variant(name string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "canonical":
	case "plain":
		cfg.VerseColor = Black
		cfg.LyricRuleColor = Black
	case "spacious":
		cfg.GapAfterHeader = 10
	case "inline":
		cfg.HeaderLayout = HeaderInline
	default:
		return cfg, fmt.Errorf("未知的样式预设 %q（可选: %s）", name, strings.Join(Variants, ", "))
	}
	return cfg, nil
}

// PrintableWidth 返回左右边距之间的宽度。
func (c Config) PrintableWidth() float64 {
	return c.PageWidth - c.Margin.Left - c.Margin.Right
}

// Tuck 是歌词线相对文本块底边的上移量：行高中字形以外的留白的一半。
func (c Config) Tuck() float64 {
	t := (c.LineHeight - c.VerseFontSize*PtToMm) / 2
	if t < 0 {
		return 0
	}
	return t
}

// Validate 检查几何是否可用于排版。
func (c Config) Validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("页面尺寸无效: %gx%g", c.PageWidth, c.PageHeight)
	}
	if c.PrintableWidth() <= 0 {
		return fmt.Errorf("左右边距 %g+%g 超出页面宽度 %g", c.Margin.Left, c.Margin.Right, c.PageWidth)
	}
	if c.Margin.Top+c.Margin.Bottom >= c.PageHeight {
		return fmt.Errorf("上下边距 %g+%g 超出页面高度 %g", c.Margin.Top, c.Margin.Bottom, c.PageHeight)
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("行高必须大于 0")
	}
	for name, size := range map[string]float64{
		"title": c.TitleFontSize, "author": c.AuthorFontSize,
		"verse": c.VerseFontSize, "notice": c.NoticeFontSize,
	} {
		if size <= 0 {
			return fmt.Errorf("%s 字号必须大于 0", name)
		}
	}
	return nil
}

// styleFile 是样式 JSON 的外部形态，长度使用带单位的字符串（"10mm"、"18pt"、"1.4x"）。
type styleFile struct {
	PageSize       string   `json:"pageSize"`
	Margin         []string `json:"margin"`
	FontFamily     string   `json:"fontFamily"`
	TitleFontSize  string   `json:"titleFontSize"`
	AuthorFontSize string   `json:"authorFontSize"`
	VerseFontSize  string   `json:"verseFontSize"`
	VerseColor     string   `json:"verseColor"`
	LyricRuleColor string   `json:"lyricRuleColor"`
	NoteRuleColor  string   `json:"noteRuleColor"`
	RuleWidth      string   `json:"ruleWidth"`
	LineHeight     string   `json:"lineHeight"`
	GapAfterHeader string   `json:"gapAfterHeader"`
	GapAfterVerse  string   `json:"gapAfterVerse"`
	GapBlocks      string   `json:"gapBetweenBlocks"`
	HeaderLayout   string   `json:"headerLayout"`
	DefaultTitle   string   `json:"defaultTitle"`
	UseCustomFont  *bool    `json:"useCustomFont"`
}

// LoadConfig 读取样式 JSON 并覆盖到 base 之上。
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("读取样式文件 %s 失败: %w", path, err)
	}
	return ParseConfig(data, base)
}

// ParseConfig 解析样式 JSON 内容，未出现的字段保留 base 中的值。
func ParseConfig(data []byte, base Config) (Config, error) {
	var sf styleFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return base, fmt.Errorf("解析样式 JSON 失败: %w", err)
	}
	cfg := base

	if sf.PageSize != "" {
		w, h, err := resolvePageSize(sf.PageSize)
		if err != nil {
			return base, err
		}
		cfg.PageWidth, cfg.PageHeight = w, h
	}
	if len(sf.Margin) > 0 {
		m, err := resolveMargin(sf.Margin)
		if err != nil {
			return base, err
		}
		cfg.Margin = m
	}
	if sf.FontFamily != "" {
		cfg.FontFamily = sf.FontFamily
	}

	pts := []struct {
		raw string
		dst *float64
	}{
		{sf.TitleFontSize, &cfg.TitleFontSize},
		{sf.AuthorFontSize, &cfg.AuthorFontSize},
		{sf.VerseFontSize, &cfg.VerseFontSize},
	}
	for _, p := range pts {
		if p.raw == "" {
			continue
		}
		l, err := ParseLength(p.raw)
		if err != nil {
			return base, err
		}
		*p.dst = l.ToPT()
	}

	mms := []struct {
		raw string
		dst *float64
	}{
		{sf.RuleWidth, &cfg.RuleWidth},
		{sf.GapAfterHeader, &cfg.GapAfterHeader},
		{sf.GapAfterVerse, &cfg.GapAfterVerse},
		{sf.GapBlocks, &cfg.GapBetweenBlocks},
	}
	for _, m := range mms {
		if m.raw == "" {
			continue
		}
		l, err := ParseLength(m.raw)
		if err != nil {
			return base, err
		}
		*m.dst = l.ToMM()
	}

	if sf.LineHeight != "" {
		spec, err := ParseLineHeight(sf.LineHeight)
		if err != nil {
			return base, err
		}
		cfg.LineHeight = spec.ResolveMM(cfg.VerseFontSize)
	}

	colors := []struct {
		raw string
		dst *Color
	}{
		{sf.VerseColor, &cfg.VerseColor},
		{sf.LyricRuleColor, &cfg.LyricRuleColor},
		{sf.NoteRuleColor, &cfg.NoteRuleColor},
	}
	for _, c := range colors {
		if c.raw == "" {
			continue
		}
		col, err := ParseColor(c.raw)
		if err != nil {
			return base, err
		}
		*c.dst = col
	}

	switch HeaderLayout(strings.ToLower(sf.HeaderLayout)) {
	case "":
	case HeaderStacked, HeaderInline:
		cfg.HeaderLayout = HeaderLayout(strings.ToLower(sf.HeaderLayout))
	default:
		return base, fmt.Errorf("未知的 headerLayout %q", sf.HeaderLayout)
	}
	if sf.DefaultTitle != "" {
		cfg.DefaultTitle = sf.DefaultTitle
	}
	if sf.UseCustomFont != nil {
		cfg.UseCustomFont = *sf.UseCustomFont
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func resolvePageSize(size string) (float64, float64, error) {
	parts := strings.Fields(strings.ToLower(size))
	if len(parts) == 0 {
		return 0, 0, fmt.Errorf("页面尺寸为空")
	}
	var w, h float64
	switch parts[0] {
	case "a4":
		w, h = 210, 297
	case "a5":
		w, h = 148, 210
	case "letter":
		w, h = 215.9, 279.4
	case "legal":
		w, h = 215.9, 355.6
	default:
		return 0, 0, fmt.Errorf("不支持的页面尺寸 %s", size)
	}
	if len(parts) > 1 && parts[1] == "landscape" {
		w, h = h, w
	}
	return w, h, nil
}

// resolveMargin 支持 1、2、3、4 个值，语义与 CSS 相同（3 个值时左=右）。
func resolveMargin(values []string) (Margin, error) {
	mm := make([]float64, 0, 4)
	for _, v := range values {
		if len(mm) == 4 {
			break
		}
		l, err := ParseLength(v)
		if err != nil {
			return Margin{}, err
		}
		mm = append(mm, l.ToMM())
	}
	switch len(mm) {
	case 1:
		return Margin{Top: mm[0], Right: mm[0], Bottom: mm[0], Left: mm[0]}, nil
	case 2:
		return Margin{Top: mm[0], Right: mm[1], Bottom: mm[0], Left: mm[1]}, nil
	case 3:
		return Margin{Top: mm[0], Right: mm[1], Bottom: mm[2], Left: mm[1]}, nil
	default:
		return Margin{Top: mm[0], Right: mm[1], Bottom: mm[2], Left: mm[3]}, nil
	}
}

// ParseColor 解析 #RGB、#RRGGBB 以及若干颜色名。
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "black":
		return Black, nil
	case "red":
		return Red, nil
	case "gray", "grey":
		return Gray, nil
	}
	v = strings.TrimPrefix(v, "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var c Color
	if _, err := fmt.Sscanf(v, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return c, nil
}
