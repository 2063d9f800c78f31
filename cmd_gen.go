package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/pauta/compose"
	"github.com/ByLCY/pauta/dsl"
	"github.com/ByLCY/pauta/fonts"
	"github.com/ByLCY/pauta/layout"
	"github.com/ByLCY/pauta/renderer"
	canvasrenderer "github.com/ByLCY/pauta/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/pauta/renderer/fpdf"
)

// 环境变量（可写在 .env 中）为未显式指定的参数提供默认值。
const (
	envRenderer = "PAUTA_RENDERER"
	envFont     = "PAUTA_FONT"
	envVariant  = "PAUTA_VARIANT"
)

// options 汇总 gen/inspect 共用的参数。
type options struct {
	input    string
	output   string
	renderer string
	variant  string
	style    string
	font     string
	data     string
	debug    string
}

var (
	GenerateCmd = &cobra.Command{
		Use:   "gen",
		Short: "generate the staff-paper pdf for a songbook or a json song list",
		Args:  cobra.NoArgs,
		RunE:  genCmd,
	}

	genOpts options
)

func init() {
	addCommonFlags(GenerateCmd, &genOpts)
	GenerateCmd.Flags().StringVarP(&genOpts.output, "out", "o", "", "PDF 输出路径（默认按第一首歌的标题命名）")
	GenerateCmd.Flags().StringVar(&genOpts.renderer, "renderer", "fpdf", "渲染后端: fpdf（相同输入逐字节可复现）| canvas（写入当前时间，输出不可复现）")
	GenerateCmd.Flags().StringVar(&genOpts.debug, "debug", "", "布局调试 JSON 输出路径")
	RootCmd.AddCommand(GenerateCmd)
}

func addCommonFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVarP(&o.input, "in", "i", "", "歌谱 DSL 或 JSON 歌曲文件")
	cmd.Flags().StringVar(&o.variant, "variant", "canonical", "样式预设: "+strings.Join(layout.Variants, " | "))
	cmd.Flags().StringVar(&o.style, "style", "", "样式 JSON 文件，覆盖在预设之上")
	cmd.Flags().StringVar(&o.font, "font", "", "自定义 TTF 字体路径；同目录下的 <名称>-Italic/-Bold/-BoldItalic 文件作为对应字形，缺失时沿用常规字形")
	cmd.Flags().StringVar(&o.data, "data", "", "绑定到歌谱占位符的 JSON 数据")
	_ = cmd.MarkFlagRequired("in")
}

// applyEnv 用环境变量填充未在命令行中出现的参数。
func applyEnv(cmd *cobra.Command, o *options) {
	fill := func(flag, env string, dst *string) {
		if f := cmd.Flags().Lookup(flag); f == nil || f.Changed {
			return
		}
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	fill("renderer", envRenderer, &o.renderer)
	fill("font", envFont, &o.font)
	fill("variant", envVariant, &o.variant)
}

func genCmd(cmd *cobra.Command, args []string) error {
	applyEnv(cmd, &genOpts)
	out, err := generate(genOpts, log.Default())
	if err != nil {
		return err
	}
	if out.Warning != "" {
		log.Print(out.Warning)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", out.FileName)
	return nil
}

// generate 串联加载、排版与渲染，返回写入磁盘后的结果（FileName 为实际路径）。
func generate(o options, logger *log.Logger) (*compose.Output, error) {
	cfg, err := resolveConfig(o)
	if err != nil {
		return nil, err
	}
	set := fonts.Builtin()
	if cfg.UseCustomFont {
		set = fonts.Resolve(o.font, logger)
	}
	backend, err := newBackend(o.renderer, set)
	if err != nil {
		return nil, err
	}
	// 核心字体以外的字形都来自 fonts.Set
	if set.Custom || strings.EqualFold(strings.TrimSpace(o.renderer), "canvas") {
		cfg.FontFamily = set.Family
	}

	songs, meta, err := loadSongs(o.input, o.data)
	if err != nil {
		return nil, err
	}

	c := compose.New(cfg, backend, compose.WithLogger(logger), compose.WithMeta(meta))
	out, err := c.Export(songs, backend)
	if err != nil {
		return nil, err
	}
	if out.Warning != "" {
		return out, nil
	}

	if o.debug != "" {
		if err := layout.WriteDebugJSON(out.Document, o.debug); err != nil {
			return nil, err
		}
	}

	path := o.output
	if path == "" {
		path = out.FileName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	out.FileName = path
	return out, nil
}

// resolveConfig 依次应用预设、样式文件与字体参数。
func resolveConfig(o options) (layout.Config, error) {
	cfg, err := layout.Variant(o.variant)
	if err != nil {
		return cfg, err
	}
	if o.style != "" {
		if cfg, err = layout.LoadConfig(o.style, cfg); err != nil {
			return cfg, err
		}
	}
	if o.font != "" {
		cfg.UseCustomFont = true
	}
	return cfg, nil
}

func newBackend(name string, set fonts.Set) (renderer.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fpdf":
		return fpdfrenderer.NewRenderer(set)
	case "canvas":
		return canvasrenderer.NewRenderer(set)
	default:
		return nil, fmt.Errorf("未知的渲染后端 %q（可选: fpdf, canvas）", name)
	}
}

// loadSongs 按扩展名读取 JSON 歌曲列表或歌谱 DSL。
func loadSongs(path, dataJSON string) ([]compose.Song, layout.DocumentMeta, error) {
	var meta layout.DocumentMeta
	var data any
	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return nil, meta, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, meta, fmt.Errorf("无法打开输入文件 %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		songs, err := compose.DecodeJSON(file)
		return songs, meta, err
	}

	book, err := dsl.Parse(file)
	if err != nil {
		return nil, meta, fmt.Errorf("解析歌谱失败: %w", err)
	}
	return compose.FromSongbook(book, data), compose.MetaFromSongbook(book, data), nil
}
