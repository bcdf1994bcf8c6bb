package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// LastRangeRepo remembers the last committed range per picker.
type LastRangeRepo struct {
	db DBTX
}

func NewLastRangeRepo(db DBTX) *LastRangeRepo { return &LastRangeRepo{db: db} }

func (r *LastRangeRepo) Save(ctx context.Context, lr LastRange) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO last_ranges(picker_id, mode, start_at, end_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(picker_id) DO UPDATE SET
	 mode=excluded.mode,
	 start_at=excluded.start_at,
	 end_at=excluded.end_at,
	 updated_at=CURRENT_TIMESTAMP;
	`, lr.PickerID, lr.Mode, encodeTime(lr.Start), encodeTime(lr.End))
	return err
}

// Get returns nil when the picker has never committed.
func (r *LastRangeRepo) Get(ctx context.Context, pickerID string) (*LastRange, error) {
	row := r.db.QueryRowContext(ctx, `SELECT picker_id, mode, start_at, end_at, updated_at FROM last_ranges WHERE picker_id = ?`, pickerID)
	var lr LastRange
	var start, end sql.NullString
	if err := row.Scan(&lr.PickerID, &lr.Mode, &start, &end, &lr.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if lr.Start, err = decodeTime(start); err != nil {
		return nil, err
	}
	if lr.End, err = decodeTime(end); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *LastRangeRepo) Clear(ctx context.Context, pickerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM last_ranges WHERE picker_id = ?`, pickerID)
	return err
}

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func decodeTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
