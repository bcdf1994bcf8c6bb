package cli

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"

	"github.com/jask/rangepick/internal/config"
	"github.com/jask/rangepick/internal/database"
	"github.com/jask/rangepick/internal/dateengine"
)

// env is what every command needs before doing its work.
type env struct {
	cfg    config.Config
	engine *dateengine.TimeEngine
	logger *slog.Logger
	output string
}

func loadEnv(opts *RootOptions, logTo io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "config", err)
	}
	e, err := cfg.Engine()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "config", err)
	}
	return &env{cfg: cfg, engine: e, logger: newLogger(logTo, cfg.Log.Level, opts.Verbose), output: opts.Output}, nil
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// openDB migrates, opens and seeds the configured database.
func (e *env) openDB(ctx context.Context) (*sql.DB, error) {
	e.logger.Debug("opening database", "path", e.cfg.Database.Path)
	db, err := database.Prepare(e.cfg.Database.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "database", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, WrapExitError(ExitCommandError, "seed defaults", err)
	}
	return db, nil
}
