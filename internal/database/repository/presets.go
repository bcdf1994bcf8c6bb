package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/rangepick/internal/presets"
)

// PresetRepo handles saved presets.
type PresetRepo struct {
	db DBTX
}

func NewPresetRepo(db DBTX) *PresetRepo { return &PresetRepo{db: db} }

const presetColumns = `id, name, kind, start_text, end_text, unit, offset_units, span, sort_order`

func (r *PresetRepo) Upsert(ctx context.Context, p presets.Preset) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO presets(`+presetColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 kind=excluded.kind,
	 start_text=excluded.start_text,
	 end_text=excluded.end_text,
	 unit=excluded.unit,
	 offset_units=excluded.offset_units,
	 span=excluded.span,
	 sort_order=excluded.sort_order,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Name, string(p.Kind), p.Start, p.End, p.Unit, p.Offset, p.Span, p.SortOrder)
	if err != nil {
		return fmt.Errorf("upsert preset %s: %w", p.Name, err)
	}
	return nil
}

// NextSortOrder is one past the largest sort order in use.
func (r *PresetRepo) NextSortOrder(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM presets`).Scan(&n)
	return n, err
}

func (r *PresetRepo) List(ctx context.Context) ([]presets.Preset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+presetColumns+` FROM presets ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []presets.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ByName matches case-insensitively. A missing preset is (nil, nil).
func (r *PresetRepo) ByName(ctx context.Context, name string) (*presets.Preset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+presetColumns+` FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Delete reports whether a row was removed.
func (r *PresetRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(s scanner) (presets.Preset, error) {
	var p presets.Preset
	var kind string
	if err := s.Scan(&p.ID, &p.Name, &kind, &p.Start, &p.End, &p.Unit, &p.Offset, &p.Span, &p.SortOrder); err != nil {
		return presets.Preset{}, err
	}
	p.Kind = presets.Kind(kind)
	return p, nil
}
