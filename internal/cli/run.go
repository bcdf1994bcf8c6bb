package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/rangepick/app"
)

// runTUI owns the terminal, so logs go to the configured file instead of
// stderr.
func runTUI(opts *RootOptions, cmd *cobra.Command) error {
	e, err := loadEnv(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logPath := e.cfg.Log.Path
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return WrapExitError(ExitCommandError, "log dir", err)
	}
	f, err := tea.LogToFile(logPath, "rangepick")
	if err != nil {
		return WrapExitError(ExitCommandError, "log file", err)
	}
	defer f.Close()
	e.logger = newLogger(f, e.cfg.Log.Level, opts.Verbose)

	db, err := e.openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			e.logger.Error("error closing database", "error", closeErr)
		}
	}()

	m, err := app.Build(app.Deps{Config: e.cfg, Engine: e.engine, DB: db, Logger: e.logger})
	if err != nil {
		return WrapExitError(ExitCommandError, "build ui", err)
	}
	e.logger.Info("starting", "db", e.cfg.Database.Path, "mode", e.cfg.Picker.Mode)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
