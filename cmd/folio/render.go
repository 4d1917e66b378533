package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

var (
	renderBasic bool
	renderTOC   bool
	renderMeta  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a local Markdown post to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		fm, body := content.ParseFrontmatter(string(raw))
		out := cmd.OutOrStdout()

		switch {
		case renderMeta:
			return printJSON(out, fm)
		case renderTOC:
			printTOC(out, markdown.ExtractTOC(body))
			return nil
		}

		var r markdown.Renderer = markdown.NewRenderer(folio.NewHighlighter(cfg))
		if renderBasic {
			r = markdown.BasicRenderer{}
		}
		html, err := r.Render(body)
		if err != nil {
			return fmt.Errorf("render %s: %w", args[0], err)
		}
		_, err = io.WriteString(out, html)
		return err
	},
}

func init() {
	f := renderCmd.Flags()
	f.BoolVar(&renderBasic, "basic", false, "use the basic renderer")
	f.BoolVar(&renderTOC, "toc", false, "print the table of contents instead")
	f.BoolVar(&renderMeta, "frontmatter", false, "print the parsed front matter as JSON")
	renderCmd.MarkFlagsMutuallyExclusive("toc", "frontmatter")
	rootCmd.AddCommand(renderCmd)
}
