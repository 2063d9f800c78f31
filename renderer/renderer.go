package renderer

import "github.com/ByLCY/pauta/layout"

// Renderer 将排版结果输出为最终文件（PDF）。
// Render 返回生成的二进制数据；失败时不返回任何部分数据。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Backend 同时负责测量与输出：排版阶段使用它的字符集与字体度量，
// 渲染阶段使用同一套字体，保证折行结果与最终输出一致。
type Backend interface {
	Renderer
	layout.Typesetter
}
