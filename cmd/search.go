package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the glyph catalog from the terminal",
	Long:  `Runs the same fuzzy search and pack/style filters as the icons page and prints one glyph per line.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("pack", nil, "only glyphs from these packs")
	searchCmd.Flags().StringSlice("style", nil, "only glyphs with these styles")
	searchCmd.Flags().Int("limit", 20, "maximum number of glyphs to print (0 for all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	q, err := queryFromFlags(cmd, args)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	matches := newFilter(cfg).Apply(holder.Current().Glyphs, q)
	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAR\tNAME\tUNICODE\tPACK\tSTYLE\tTAGS")
	for _, g := range shown {
		fmt.Fprintf(tw, "%s\t%s\tU+%s\t%s\t%s\t%s\n", g.Character, g.Name, strings.ToUpper(g.Unicode), g.Pack, g.Style, g.Tags)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s of %s matching glyphs shown\n", humanizeCount(len(shown)), humanizeCount(len(matches)))
	return nil
}

// queryFromFlags builds a search query from the term argument and the
// --pack and --style flags.
func queryFromFlags(cmd *cobra.Command, args []string) (search.Query, error) {
	packs, err := cmd.Flags().GetStringSlice("pack")
	if err != nil {
		return search.Query{}, err
	}
	styles, err := cmd.Flags().GetStringSlice("style")
	if err != nil {
		return search.Query{}, err
	}
	v := url.Values{"pack": packs, "style": styles}
	if len(args) > 0 {
		v.Set("q", args[0])
	}
	return search.ParseQuery(v), nil
}
