package store

import (
	"context"
	"fmt"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// Glyphs returns the glyphs of the latest snapshot in their original order.
func (d *DB) Glyphs(ctx context.Context) ([]catalog.Glyph, error) {
	snap, err := d.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrFetch, err)
	}
	return glyphsOf(ctx, d.DB, snap)
}

// Fonts returns the fonts of the latest snapshot in their original order.
func (d *DB) Fonts(ctx context.Context) ([]catalog.Font, error) {
	snap, err := d.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrFetch, err)
	}
	return fontsOf(ctx, d.DB, snap)
}

// Snapshot reads the glyphs and fonts of the latest snapshot inside one
// read transaction, so an import committing meanwhile cannot mix them.
func (d *DB) Snapshot(ctx context.Context) ([]catalog.Glyph, []catalog.Font, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: beginning read: %v", catalog.ErrFetch, err)
	}
	defer tx.Rollback()

	snap, err := latest(ctx, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", catalog.ErrFetch, err)
	}
	glyphs, err := glyphsOf(ctx, tx, snap)
	if err != nil {
		return nil, nil, err
	}
	fonts, err := fontsOf(ctx, tx, snap)
	if err != nil {
		return nil, nil, err
	}
	return glyphs, fonts, nil
}

func glyphsOf(ctx context.Context, q querier, snap Snapshot) ([]catalog.Glyph, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, unicode, character, pack, style, tags FROM glyphs WHERE snapshot_id = ? ORDER BY position`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying glyphs: %v", catalog.ErrFetch, err)
	}
	defer rows.Close()

	glyphs := make([]catalog.Glyph, 0, snap.GlyphCount)
	for rows.Next() {
		var g catalog.Glyph
		if err := rows.Scan(&g.Name, &g.Unicode, &g.Character, &g.Pack, &g.Style, &g.Tags); err != nil {
			return nil, fmt.Errorf("%w: scanning glyph: %v", catalog.ErrParse, err)
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, rows.Err()
}

func fontsOf(ctx context.Context, q querier, snap Snapshot) ([]catalog.Font, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, font_file, version FROM fonts WHERE snapshot_id = ? ORDER BY position`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying fonts: %v", catalog.ErrFetch, err)
	}
	defer rows.Close()

	fonts := make([]catalog.Font, 0, snap.FontCount)
	for rows.Next() {
		var f catalog.Font
		if err := rows.Scan(&f.Name, &f.FontFile, &f.Version); err != nil {
			return nil, fmt.Errorf("%w: scanning font: %v", catalog.ErrParse, err)
		}
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}

var _ catalog.SnapshotSource = (*DB)(nil)
