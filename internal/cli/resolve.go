package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/presets"
)

var (
	ErrRejected     = errors.New("rejected")
	ErrNotCommitted = errors.New("range was not committed")
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Mode       string
	ShowTime   bool
	Patterns   []string
	AllowEmpty bool
	Preset     string
}

// ResolvedRange is the JSON shape of a committed range.
type ResolvedRange struct {
	Start     string     `json:"start"`
	End       string     `json:"end"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Preset    string     `json:"preset,omitempty"`
}

func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve [start] [end]",
		Short: "Run the picker on typed text and print the committed range",
		Long: `Resolve types start and end into the picker the way a user would and
prints what the picker commits. Text that does not parse, or that hits a
disabled date, is an error.

Example:
  rangepick resolve 2024-03-01 2024-03-07
  rangepick resolve --mode month 2024-01 2024-03
  rangepick resolve --preset "last month" -o json`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "", "picker mode (default from config)")
	cmd.Flags().BoolVar(&opts.ShowTime, "show-time", false, "pick date and time")
	cmd.Flags().StringSliceVar(&opts.Patterns, "pattern", nil, "input pattern, Go layout; first one formats output")
	cmd.Flags().BoolVar(&opts.AllowEmpty, "allow-empty", false, "commit with one side empty")
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "resolve a stored preset instead of text")

	return cmd
}

func runResolve(opts *ResolveOptions, args []string, cmd *cobra.Command) error {
	e, err := loadEnv(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg := e.cfg
	if opts.Mode != "" {
		cfg.Picker.Mode = opts.Mode
		cfg.Picker.Format = nil
	}
	if opts.ShowTime {
		cfg.Picker.ShowTime = true
	}
	if len(opts.Patterns) > 0 {
		cfg.Picker.Format = opts.Patterns
	}
	if opts.AllowEmpty {
		cfg.Picker.AllowEmpty = true
	}
	pickerCfg, err := cfg.PickerOptions(e.engine)
	if err != nil {
		return WrapExitError(ExitCommandError, "picker options", err)
	}
	p, err := rangepick.New(pickerCfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "picker options", err)
	}

	var r rangepick.Range
	var presetName string
	if opts.Preset != "" {
		if len(args) > 0 {
			return WrapExitError(ExitCommandError, "resolve", errors.New("--preset takes no arguments"))
		}
		preset, err := lookupPreset(cmd.Context(), e, opts.Preset)
		if err != nil {
			return err
		}
		r, err = preset.Resolve(e.engine)
		if err != nil {
			return WrapExitError(ExitFailure, "resolve preset", err)
		}
		p.SetValue(r)
		r = p.Value()
		presetName = preset.Name
	} else {
		if len(args) == 0 {
			return WrapExitError(ExitCommandError, "resolve", errors.New("give start and end text or --preset"))
		}
		var texts [2]string
		copy(texts[:], args)
		r, err = TypeRange(p, texts)
		if err != nil {
			return WrapExitError(ExitFailure, "resolve", err)
		}
	}
	e.logger.Debug("resolved", "start", r[rangepick.SideStart], "end", r[rangepick.SideEnd])

	text := p.FormatRange(r)
	out := ResolvedRange{Start: text[0], End: text[1], Preset: presetName}
	if r[rangepick.SideStart].Valid() {
		t := r[rangepick.SideStart].Time()
		out.StartTime = &t
	}
	if r[rangepick.SideEnd].Valid() {
		t := r[rangepick.SideEnd].Time()
		out.EndTime = &t
	}
	f := &OutputFormatter{Format: opts.Output, Writer: cmd.OutOrStdout()}
	return f.Emit(out, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s %s\n", out.Start, p.Separator(), out.End)
		return err
	})
}

// TypeRange drives p headlessly: each non-empty text is typed into its side
// and submitted. It returns the committed range.
func TypeRange(p *rangepick.Picker, texts [2]string) (rangepick.Range, error) {
	if !p.Activate() {
		return rangepick.Range{}, fmt.Errorf("%w: both sides are disabled", ErrRejected)
	}
	defer func() {
		if p.IsOpen() {
			p.Close()
		}
	}()
	for _, side := range []rangepick.Side{rangepick.SideStart, rangepick.SideEnd} {
		text := texts[side]
		if text == "" {
			continue
		}
		if p.Disabled()[side] {
			return rangepick.Range{}, fmt.Errorf("%w: %s side is disabled", ErrRejected, side)
		}
		if !p.IsOpen() || p.ActiveSide() != side {
			p.Open(side)
		}
		if !p.TypeText(side, text) {
			return rangepick.Range{}, fmt.Errorf("%w: %s %q", ErrRejected, side, text)
		}
		p.SubmitText(side)
	}
	committed := p.Value()
	for _, side := range []rangepick.Side{rangepick.SideStart, rangepick.SideEnd} {
		if texts[side] != "" && !committed[side].Valid() {
			return committed, ErrNotCommitted
		}
	}
	return committed, nil
}

func lookupPreset(ctx context.Context, e *env, name string) (presets.Preset, error) {
	db, err := e.openDB(ctx)
	if err != nil {
		return presets.Preset{}, err
	}
	defer db.Close()
	all, err := repository.NewPresetRepo(db).List(ctx)
	if err != nil {
		return presets.Preset{}, WrapExitError(ExitCommandError, "list presets", err)
	}
	p, err := presets.Find(all, name)
	if err != nil {
		return presets.Preset{}, WrapExitError(ExitFailure, "lookup", err)
	}
	return p, nil
}
