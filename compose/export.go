package compose

import (
	"fmt"
	"strings"

	"github.com/ByLCY/pauta/layout"
	"github.com/ByLCY/pauta/renderer"
)

// MediaType 是输出文件的媒体类型。
const MediaType = "application/pdf"

// WarningNoLyrics 在单曲模式下没有任何歌词时代替文档返回。
const WarningNoLyrics = "no lyrics were entered; nothing to generate"

// Output 是一次导出的结果。Warning 非空时不生成文件，Data 为空。
type Output struct {
	Data      []byte
	FileName  string
	MediaType string
	Warning   string
	Document  *layout.Document
}

// Export 排版并渲染。单曲且没有任何歌词时只返回警告；渲染失败时返回错误，
// 不返回部分数据。
func (c *Composer) Export(songs []Song, r renderer.Renderer) (*Output, error) {
	if len(songs) == 1 && countVerses(songs) == 0 {
		c.logger.Printf("未输入歌词，跳过生成")
		return &Output{Warning: WarningNoLyrics}, nil
	}
	if r == nil {
		return nil, fmt.Errorf("未指定渲染器")
	}
	doc := c.Compose(songs)
	data, err := r.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	return &Output{
		Data:      data,
		FileName:  SuggestedFileName(songs),
		MediaType: MediaType,
		Document:  doc,
	}, nil
}

// SuggestedFileName 由第一首歌的标题生成文件名：空格替换为下划线，加 .pdf 后缀。
func SuggestedFileName(songs []Song) string {
	title := ""
	if len(songs) > 0 {
		title = strings.TrimSpace(songs[0].Title)
	}
	if title == "" {
		title = layout.DefaultConfig().DefaultTitle
	}
	name := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, title)
	return name + ".pdf"
}
