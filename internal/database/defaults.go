package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/presets"
)

// SeedDefaults ensures the built-in presets exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewPresetRepo(db)
	existing, err := repo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	return WithTx(db, func(tx *sql.Tx) error {
		txRepo := repository.NewPresetRepo(tx)
		for _, p := range presets.Defaults() {
			if err := txRepo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("seed %s: %w", p.Name, err)
			}
		}
		return nil
	})
}
