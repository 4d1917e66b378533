package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

var (
	showHTML  bool
	showTOC   bool
	showTerm  bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print one blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _ := folio.NewContentService(cfg, nil, newLogger())
		post, err := svc.Post(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case showHTML:
			_, err = io.WriteString(out, post.HTML)
			return err
		case showTOC:
			printTOC(out, post.TOC)
			return nil
		}
		printHeader(out, post)
		if !showTerm {
			_, err = io.WriteString(out, post.Content)
			return err
		}
		return renderTerm(out, post.Content, showWidth)
	},
}

func init() {
	f := showCmd.Flags()
	f.BoolVar(&showHTML, "html", false, "print the rendered HTML")
	f.BoolVar(&showTOC, "toc", false, "print the table of contents")
	f.BoolVar(&showTerm, "term", false, "render the Markdown for the terminal")
	f.IntVar(&showWidth, "width", 80, "word wrap width for --term")
	showCmd.MarkFlagsMutuallyExclusive("html", "toc", "term")
	rootCmd.AddCommand(showCmd)
}

func printHeader(w io.Writer, p content.Post) {
	fmt.Fprintln(w, titleStyle.Render(p.Title))
	meta := fmt.Sprintf("%s · %d min read", p.Date, p.ReadingTime)
	if len(p.Tags) > 0 {
		meta += " · " + tagStyle.Render(strings.Join(p.Tags, ", "))
	}
	fmt.Fprintln(w, dimStyle.Render(meta))
	fmt.Fprintln(w)
}

func printTOC(w io.Writer, toc []markdown.Heading) {
	if len(toc) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no headings"))
		return
	}
	for _, h := range toc {
		indent := strings.Repeat("  ", h.Level-1)
		fmt.Fprintf(w, "%s%s %s\n", indent, h.Text, dimStyle.Render("#"+h.ID))
	}
}

func renderTerm(w io.Writer, md string, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	s, err := r.Render(markdown.NormalizeFences(md))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
