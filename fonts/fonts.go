package fonts

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/pauta/layout"
)

// BuiltinFamily 是内置 Go 字体族的名称。
const BuiltinFamily = "Go"

// Set 保存一次性解析得到的四种字形数据；解析后只读，可在 goroutine 间共享。
// Custom 为 true 时，Regular 来自用户提供的 TTF；其余字形取同目录下的同名变体文件，
// 找不到时沿用 Regular。
type Set struct {
	Family     string
	Regular    []byte
	Italic     []byte
	Bold       []byte
	BoldItalic []byte
	Custom     bool
	Path       string
}

// Builtin 返回 golang.org/x/image 附带的 Go 字体族。
func Builtin() Set {
	return Set{
		Family:     BuiltinFamily,
		Regular:    goregular.TTF,
		Italic:     goitalic.TTF,
		Bold:       gobold.TTF,
		BoldItalic: gobolditalic.TTF,
	}
}

// Resolve 探测 path 指向的自定义字体；path 为空、不可读或不是 TrueType/OpenType 时
// 记录日志并退回内置字体。logger 为 nil 时使用 log.Default()。
func Resolve(path string, logger *log.Logger) Set {
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(path) == "" {
		return Builtin()
	}
	data, err := Load(path)
	if err != nil {
		logger.Printf("自定义字体不可用，改用内置字体: %v", err)
		return Builtin()
	}
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	family := strings.TrimSuffix(name, "-Regular")
	sibling := func(suffix string) []byte {
		p := filepath.Join(filepath.Dir(path), family+suffix+ext)
		if _, err := os.Stat(p); err != nil {
			return data
		}
		face, err := Load(p)
		if err != nil {
			logger.Printf("字形变体不可用，沿用常规字形: %v", err)
			return data
		}
		return face
	}
	return Set{
		Family:     name,
		Regular:    data,
		Italic:     sibling("-Italic"),
		Bold:       sibling("-Bold"),
		BoldItalic: sibling("-BoldItalic"),
		Custom:     true,
		Path:       path,
	}
}

// Load 读取字体文件并检查魔数。
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	if !isSFNT(data) {
		return nil, fmt.Errorf("字体 %s 不是 TrueType/OpenType 文件", path)
	}
	return data, nil
}

func isSFNT(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true", "OTTO", "ttcf":
		return true
	}
	return false
}

// Face 返回与样式对应的字形数据。
func (s Set) Face(style layout.FontStyle) []byte {
	switch {
	case style.Bold() && style.Italic():
		return s.BoldItalic
	case style.Bold():
		return s.Bold
	case style.Italic():
		return s.Italic
	default:
		return s.Regular
	}
}
