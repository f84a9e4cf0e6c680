package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/assets"
	mcpserver "github.com/iconicfonts/iconic/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing glyph search, pack and font listing tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		holder, closeSource, err := loadHolder(context.Background(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		c := holder.Current()
		fmt.Fprintf(os.Stderr, "iconic MCP server started on stdio (glyphs=%d, packs=%d, fonts=%d)\n", len(c.Glyphs), len(c.Packs), len(c.Fonts))

		srv := mcpserver.NewServer(holder, newFilter(cfg), assets.URLs{Base: cfg.PackBase})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
