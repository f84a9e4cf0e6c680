package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "iconic",
	Short: "Browse, search and publish the IconicFonts glyph catalog",
	Long: `iconic loads the IconicFonts glyph table and font list, serves a
searchable icon grid and font showcase, and can build the same site as
static files. It also exposes the catalog to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".iconic.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

