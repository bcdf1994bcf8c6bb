package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/rangepick/internal/database"
	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/internal/presets"
)

const listDateLayout = "2006-01-02"

func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stored range presets",
	}
	cmd.AddCommand(newPresetsListCommand(rootOpts))
	cmd.AddCommand(newPresetsAddCommand(rootOpts))
	cmd.AddCommand(newPresetsDeleteCommand(rootOpts))
	cmd.AddCommand(newPresetsImportCommand(rootOpts))
	cmd.AddCommand(newPresetsExportCommand(rootOpts))
	return cmd
}

// withDB loads config, opens the database and hands both to fn.
func withDB(opts *RootOptions, cmd *cobra.Command, fn func(e *env, db *sql.DB) error) error {
	e, err := loadEnv(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	db, err := e.openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			e.logger.Error("error closing database", "error", closeErr)
		}
	}()
	return fn(e, db)
}

// PresetView is a preset with the range it resolves to today.
type PresetView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Error       string `json:"error,omitempty"`
}

func viewOf(e dateengine.Engine, p presets.Preset) PresetView {
	v := PresetView{ID: p.ID, Name: p.Name, Kind: string(p.Kind), Description: p.Describe()}
	r, err := p.Resolve(e)
	if err != nil {
		v.Error = err.Error()
		return v
	}
	v.From = e.Format(r[0], listDateLayout)
	v.To = e.Format(r[1], listDateLayout)
	return v
}

func newPresetsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List presets and what they resolve to now",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(rootOpts, cmd, func(e *env, db *sql.DB) error {
				all, err := repository.NewPresetRepo(db).List(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "list presets", err)
				}
				views := make([]PresetView, 0, len(all))
				for _, p := range all {
					views = append(views, viewOf(e.engine, p))
				}
				f := &OutputFormatter{Format: rootOpts.Output, Writer: cmd.OutOrStdout()}
				return f.Emit(views, func(w io.Writer) error {
					return writePresetTable(w, views)
				})
			})
		},
	}
}

func writePresetTable(w io.Writer, views []PresetView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No presets.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "KIND", "DEFINITION", "RANGE")
	for _, v := range views {
		resolved := v.From + " ~ " + v.To
		if v.Error != "" {
			resolved = "invalid"
		}
		t.Row(v.Name, v.Kind, v.Description, resolved)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

type addOptions struct {
	from, to string
	unit     string
	offset   int
	span     int
}

func newPresetsAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an absolute or relative preset",
		Long: `Add a preset. Give --from and --to for fixed dates, or --unit with
--offset and --span for a range relative to the current day.

Example:
  rangepick presets add "Q1 2024" --from 2024-01-01 --to 2024-03-31
  rangepick presets add "Last 2 weeks" --unit week --offset -2 --span 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := presets.Preset{
				Name:   args[0],
				Start:  opts.from,
				End:    opts.to,
				Unit:   opts.unit,
				Offset: opts.offset,
				Span:   opts.span,
			}.Normalize()
			return withDB(rootOpts, cmd, func(e *env, db *sql.DB) error {
				return addPreset(cmd, e, db, p)
			})
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "first day of an absolute preset")
	cmd.Flags().StringVar(&opts.to, "to", "", "last day of an absolute preset")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "day, week, month, quarter or year")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "units from the current one to the first")
	cmd.Flags().IntVar(&opts.span, "span", 1, "number of units covered")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("from", "unit")
	return cmd
}

func addPreset(cmd *cobra.Command, e *env, db *sql.DB, p presets.Preset) error {
	ctx := cmd.Context()
	if err := p.Validate(e.engine); err != nil {
		return WrapExitError(ExitFailure, "add preset", err)
	}
	repo := repository.NewPresetRepo(db)
	existing, err := repo.ByName(ctx, p.Name)
	if err != nil {
		return WrapExitError(ExitCommandError, "add preset", err)
	}
	if existing != nil {
		return WrapExitError(ExitFailure, "add preset", fmt.Errorf("%q already exists", existing.Name))
	}
	order, err := repo.NextSortOrder(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "add preset", err)
	}
	p.ID = presets.NewID()
	p.SortOrder = order
	if err := repo.Upsert(ctx, p); err != nil {
		return WrapExitError(ExitCommandError, "add preset", err)
	}
	e.logger.Info("preset added", "name", p.Name, "id", p.ID)
	f := &OutputFormatter{Format: e.output, Writer: cmd.OutOrStdout()}
	return f.Emit(viewOf(e.engine, p), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "added %s (%s)\n", p.Name, p.Describe())
		return err
	})
}

func newPresetsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a preset by name or id",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(rootOpts, cmd, func(e *env, db *sql.DB) error {
				ctx := cmd.Context()
				repo := repository.NewPresetRepo(db)
				all, err := repo.List(ctx)
				if err != nil {
					return WrapExitError(ExitCommandError, "delete preset", err)
				}
				p, err := presets.Find(all, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "delete preset", err)
				}
				if p.ID != args[0] && !strings.EqualFold(p.Name, strings.TrimSpace(args[0])) {
					return WrapExitError(ExitFailure, "delete preset",
						fmt.Errorf("%w: %q, did you mean %q?", presets.ErrNotFound, args[0], p.Name))
				}
				if _, err := repo.Delete(ctx, p.ID); err != nil {
					return WrapExitError(ExitCommandError, "delete preset", err)
				}
				e.logger.Info("preset deleted", "name", p.Name, "id", p.ID)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p.Name)
				return err
			})
		},
	}
}

func newPresetsImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import presets from a .yaml or .toml file",
		Long: `Import presets from a YAML or TOML file. A preset whose name already
exists replaces the stored one. The whole file is rejected if any preset is
invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := readPresetFile(args[0])
			if err != nil {
				return err
			}
			return withDB(rootOpts, cmd, func(e *env, db *sql.DB) error {
				n, err := importPresets(cmd, e, db, ps)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d presets\n", n)
				return err
			})
		},
	}
}

func readPresetFile(path string) ([]presets.Preset, error) {
	format, err := presets.FormatFromPath(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "import", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "import", err)
	}
	defer f.Close()
	ps, err := presets.Decode(f, format)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "import", err)
	}
	return ps, nil
}

func importPresets(cmd *cobra.Command, e *env, db *sql.DB, ps []presets.Preset) (int, error) {
	ctx := cmd.Context()
	var errs []error
	for _, p := range ps {
		if err := p.Validate(e.engine); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return 0, WrapExitError(ExitFailure, "import", err)
	}
	err := database.WithTx(db, func(tx *sql.Tx) error {
		repo := repository.NewPresetRepo(tx)
		next, err := repo.NextSortOrder(ctx)
		if err != nil {
			return err
		}
		for _, p := range ps {
			existing, err := repo.ByName(ctx, p.Name)
			if err != nil {
				return err
			}
			switch {
			case existing != nil:
				p.ID = existing.ID
				p.SortOrder = existing.SortOrder
			default:
				if p.ID == "" {
					p.ID = presets.NewID()
				}
				p.SortOrder = next
				next++
			}
			if err := repo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "import", err)
	}
	e.logger.Info("presets imported", "count", len(ps))
	return len(ps), nil
}

func newPresetsExportCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export presets as YAML or TOML",
		Long: `Export presets to a file, or to stdout when no file is given. The file
extension picks the format; --type overrides it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := presets.Format(kind)
			if len(args) == 1 && !cmd.Flags().Changed("type") {
				f, err := presets.FormatFromPath(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				format = f
			}
			return withDB(rootOpts, cmd, func(e *env, db *sql.DB) error {
				all, err := repository.NewPresetRepo(db).List(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				if len(args) == 0 {
					return presets.Encode(cmd.OutOrStdout(), format, all)
				}
				out, err := os.Create(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				if err := presets.Encode(out, format, all); err != nil {
					_ = out.Close()
					return WrapExitError(ExitCommandError, "export", err)
				}
				if err := out.Close(); err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				e.logger.Info("presets exported", "count", len(all), "path", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(presets.FormatYAML), "yaml or toml")
	return cmd
}
