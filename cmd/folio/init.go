package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

var (
	initOwner string
	initRepo  string
	initName  string
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a starter site directory",
	Args:  cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Creating folio site in %s\n\n", args[0])
		err := scaffold.Generate(args[0], scaffold.Data{
			SiteName: initName,
			Owner:    initOwner,
			Repo:     initRepo,
		}, func(path string) {
			fmt.Fprintf(out, "  created %s\n", dimStyle.Render(path))
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("Done! Next steps:"))
		fmt.Fprintf(out, "  cd %s\n", args[0])
		fmt.Fprintln(out, "  push posts/hello-world.md to your blog repository")
		fmt.Fprintln(out, "  folio serve")
		return nil
	},
}

func init() {
	f := initCmd.Flags()
	f.StringVar(&initOwner, "owner", "", "GitHub owner of the blog repository")
	f.StringVar(&initRepo, "repo", "", "GitHub repository holding the posts")
	f.StringVar(&initName, "name", "", "site name (default derived from dir)")
	rootCmd.AddCommand(initCmd)
}
