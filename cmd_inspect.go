package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/pauta/binding"
	"github.com/ByLCY/pauta/compose"
	"github.com/ByLCY/pauta/layout"
)

var (
	InspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "print songs, verse counts and page estimates without rendering",
		Args:  cobra.NoArgs,
		RunE:  inspectCmd,
	}

	inspectOpts options
)

func init() {
	addCommonFlags(InspectCmd, &inspectOpts)
	RootCmd.AddCommand(InspectCmd)
}

func inspectCmd(cmd *cobra.Command, args []string) error {
	applyEnv(cmd, &inspectOpts)
	cfg, err := resolveConfig(inspectOpts)
	if err != nil {
		return err
	}
	songs, _, err := loadSongs(inspectOpts.input, inspectOpts.data)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, s := range songs {
		fmt.Fprintf(w, "%d. %s / %s\n", i+1, displayTitle(s.Title, cfg), s.Author)
		for _, b := range s.Blocks {
			label := b.Label
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(w, "   [%s] %d verses\n", label, len(b.Verses))
		}
	}
	// 页数按估算字宽计算，与实际渲染后端可能略有差异
	doc := compose.New(cfg, layout.EstimateTypesetter{}, compose.WithLogger(log.Default())).Compose(songs)
	fmt.Fprintf(w, "songs: %d, pages: %d\n", len(songs), len(doc.Pages))
	if missing := unresolved(songs); len(missing) > 0 {
		fmt.Fprintf(w, "unresolved: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

// unresolved 收集插值之后仍留在标题、作者与歌词中的占位符路径，去重后按出现顺序返回。
func unresolved(songs []compose.Song) []string {
	seen := map[string]bool{}
	var out []string
	collect := func(text string) {
		for _, p := range binding.Placeholders(text) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	for _, s := range songs {
		collect(s.Title)
		collect(s.Author)
		for _, b := range s.Blocks {
			for _, v := range b.Verses {
				collect(v)
			}
		}
	}
	return out
}

func displayTitle(title string, cfg layout.Config) string {
	if title == "" {
		return cfg.DefaultTitle
	}
	return title
}
