package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [term]",
	Short: "Export the filtered glyph list as CSV, JSON or Excel",
	Long: `Filters the catalog like the icons page and writes the result. The xlsx
format produces an "All" sheet plus one sheet per pack.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "", "csv, json or xlsx (defaults to the output extension, then csv)")
	exportCmd.Flags().StringP("output", "o", "", "output file (defaults to stdout)")
	exportCmd.Flags().StringSlice("pack", nil, "only glyphs from these packs")
	exportCmd.Flags().StringSlice("style", nil, "only glyphs with these styles")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	output, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = strings.TrimPrefix(filepath.Ext(output), ".")
	}
	if formatName == "" {
		formatName = string(export.CSV)
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == export.XLSX && output == "" {
		return fmt.Errorf("xlsx export needs --output")
	}

	holder, closeSource, err := loadHolder(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	q, err := queryFromFlags(cmd, args)
	if err != nil {
		return err
	}
	glyphs := newFilter(cfg).Apply(holder.Current().Glyphs, q)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, glyphs); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	if output == "" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	size := buf.Len()
	if err := atomic.WriteFile(output, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %s glyphs to %s (%s)\n", humanizeCount(len(glyphs)), output, humanize.Bytes(uint64(size)))
	return nil
}
