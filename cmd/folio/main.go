// Command folio serves a portfolio site and inspects its blog content from
// the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	debug   bool

	cfg folio.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Portfolio and blog server backed by a GitHub repository",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := folio.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log gateway requests")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}

// newLogger returns the CLI logger; gateway traffic shows with --debug.
func newLogger() *log.Logger {
	l := log.New("folio")
	l.SetOutput(os.Stderr)
	if debug {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.WARN)
	}
	return l
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
		os.Exit(1)
	}
}
