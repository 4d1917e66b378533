package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

var (
	listDomain string
	listSearch string
	listTag    string
	listPage   int
	listLimit  int
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog posts or thoughts",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := content.ParseDomain(listDomain)
		if err != nil {
			return err
		}
		svc, _ := folio.NewContentService(cfg, nil, newLogger())
		res, err := svc.Fetch(cmd.Context(), content.Query{
			Domain:   domain,
			Search:   listSearch,
			Tag:      listTag,
			Page:     listPage,
			PageSize: listLimit,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if listJSON {
			return printJSON(out, res)
		}
		printList(out, res)
		return nil
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listDomain, "domain", "blog", "content domain: blog or thoughts")
	f.StringVar(&listSearch, "q", "", "search text")
	f.StringVar(&listTag, "tag", "", "only posts with this tag")
	f.IntVar(&listPage, "page", 1, "page number")
	f.IntVar(&listLimit, "limit", 0, "page size (0 uses the default)")
	f.BoolVar(&listJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(listCmd)
}

func printList(w io.Writer, res content.Result) {
	if len(res.Items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no results"))
		return
	}
	for _, it := range res.Items {
		switch v := it.(type) {
		case content.Post:
			title := titleStyle.Render(v.Title)
			if v.Degraded {
				title = warnStyle.Render(v.Title + " (unavailable)")
			}
			fmt.Fprintf(w, "%s  %s\n", title, dimStyle.Render(v.Slug))
			fmt.Fprintf(w, "  %s · %d min read", v.Date, v.ReadingTime)
			if len(v.Tags) > 0 {
				fmt.Fprintf(w, " · %s", tagStyle.Render(strings.Join(v.Tags, ", ")))
			}
			fmt.Fprintln(w)
		case content.Thought:
			fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(v.Title), dimStyle.Render(v.Slug))
			fmt.Fprintf(w, "  %s · %s\n", v.Date, v.ReadTime)
		}
	}
	more := ""
	if res.HasMore {
		more = ", more available"
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d of %d%s", len(res.Items), res.Total, more)))
}
