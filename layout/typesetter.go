package layout

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Typesetter 负责文本的字符集清理与按宽度折行测量。
// 字体在构造排版后端时一次性解析，因此这里的方法不会失败。
type Typesetter interface {
	// Sanitize 将文本限制在输出格式可表示的字符集内，不可表示的字符替换为占位符。
	Sanitize(text string) string
	// LayoutLines 按 width（mm）折行，width<=0 表示不折行；返回的每行带有测量宽度（mm）。
	LayoutLines(content string, width float64, font Font) []TextLine
}

// MeasureFunc 返回字符串在某一字体下的宽度（mm）。
type MeasureFunc func(s string) float64

// WrapLines 使用贪心算法折行：优先在空白处断开，单词超过限制时在词内拆分。
// 显式换行始终保留；行首的空白会被丢弃。
func WrapLines(content string, width float64, measure MeasureFunc) []TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, TextLine{})
			}
			return
		}
		s := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		lines = append(lines, TextLine{Content: s, Width: measure(s)})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		if builder.Len() == 0 && strings.TrimSpace(token) == "" {
			return
		}
		builder.WriteString(token)
		currentWidth += measure(token)
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		tokenWidth := measure(token)
		isSpace := strings.TrimSpace(token) == ""
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			if isSpace {
				// 行尾空白不参与宽度比较
				emit(false)
				continue
			}
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}
	emit(len(lines) == 0)
	return lines
}

// tokenize 将文本切分为交替的空白/非空白片段，换行单独成为一个片段。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(token string, limit float64, measure MeasureFunc) []string {
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if measure(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}

// EstimateTypesetter 以字号的固定比例估算字符宽度，不依赖任何字体文件。
// 用于没有渲染后端参与的排版（调试、测试、inspect 命令）。
type EstimateTypesetter struct{}

var _ Typesetter = EstimateTypesetter{}

// Sanitize 去掉控制字符，其余原样保留。
func (EstimateTypesetter) Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || unicode.IsPrint(r) {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return '?'
	}, text)
}

func (EstimateTypesetter) LayoutLines(content string, width float64, font Font) []TextLine {
	return WrapLines(content, width, func(s string) float64 {
		return EstimateWidth(s, font)
	})
}

// EstimateWidth 估算单行文本宽度（mm）：每个字符约 0.5em，粗体 0.55em，空白 0.25em。
func EstimateWidth(s string, font Font) float64 {
	em := font.SizeMM()
	glyph := 0.5
	if font.Style.Bold() {
		glyph = 0.55
	}
	w := 0.0
	for _, r := range s {
		if unicode.IsSpace(r) {
			w += 0.25 * em
			continue
		}
		w += glyph * em
	}
	return w
}
