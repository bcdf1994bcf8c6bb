package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LastRange is the last committed range of one picker. Nil bounds are empty
// sides.
type LastRange struct {
	PickerID  string
	Mode      string
	Start     *time.Time
	End       *time.Time
	UpdatedAt time.Time
}
