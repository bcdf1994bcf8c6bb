package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
)

// Config holds application configuration.
type Config struct {
	Database    DatabaseConfig
	Log         LogConfig
	Picker      PickerConfig
	UI          UIConfig
	Keybindings map[string][]string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

type LogConfig struct {
	Path  string
	Level string
}

// PickerConfig mirrors rangepick.Config for the fields a user can set.
// Disabled and AllowEmpty take a bool, a pair of bools or one of
// "start"/"end"/"both".
type PickerConfig struct {
	Mode         string   `mapstructure:"mode"`
	ShowTime     bool     `mapstructure:"show_time"`
	Use12Hours   bool     `mapstructure:"use_12_hours"`
	Format       []string `mapstructure:"format"`
	Separator    string   `mapstructure:"separator"`
	Direction    string   `mapstructure:"direction"`
	AllowEmpty   any      `mapstructure:"allow_empty"`
	Disabled     any      `mapstructure:"disabled"`
	EnforceOrder bool     `mapstructure:"enforce_order"`
	AllowClear   bool     `mapstructure:"allow_clear"`
	WeekStart    string   `mapstructure:"week_start"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale        string
	Timezone      string
	OpenRecordTTL time.Duration `mapstructure:"open_record_ttl"`
}

// Path is the config file location: RANGEPICK_CONFIG or the user config dir.
func Path() string {
	if p := os.Getenv("RANGEPICK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "rangepick", "config.toml")
}

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func cacheHome() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".cache")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "rangepick", "rangepick.db"))
	v.SetDefault("log.path", filepath.Join(cacheHome(), "rangepick", "rangepick.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("picker.mode", "date")
	v.SetDefault("picker.show_time", false)
	v.SetDefault("picker.use_12_hours", false)
	v.SetDefault("picker.format", []string{})
	v.SetDefault("picker.separator", "")
	v.SetDefault("picker.direction", "ltr")
	v.SetDefault("picker.allow_empty", false)
	v.SetDefault("picker.disabled", false)
	v.SetDefault("picker.enforce_order", true)
	v.SetDefault("picker.allow_clear", true)
	v.SetDefault("picker.week_start", "monday")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.open_record_ttl", "150ms")
}

// Load reads configuration from file and env. Env var overrides use prefix RANGEPICK_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("RANGEPICK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the fields that are only loosely typed in the file.
func (c Config) Validate() error {
	if _, err := rangepick.ParseMode(c.Picker.Mode); err != nil {
		return fmt.Errorf("picker.mode: %w", err)
	}
	if _, err := rangepick.ParseDirection(c.Picker.Direction); err != nil {
		return fmt.Errorf("picker.direction: %w", err)
	}
	if _, err := rangepick.NormalizeDisabled(c.Picker.Disabled); err != nil {
		return fmt.Errorf("picker.disabled: %w", err)
	}
	if _, err := rangepick.NormalizeDisabled(c.Picker.AllowEmpty); err != nil {
		return fmt.Errorf("picker.allow_empty: %w", err)
	}
	if _, err := ParseWeekday(c.Picker.WeekStart); err != nil {
		return fmt.Errorf("picker.week_start: %w", err)
	}
	if _, err := time.LoadLocation(c.UI.Timezone); err != nil {
		return fmt.Errorf("ui.timezone: %w", err)
	}
	if c.UI.OpenRecordTTL < 0 {
		return fmt.Errorf("ui.open_record_ttl: must not be negative")
	}
	return nil
}

func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", s)
}

// Engine builds the date engine for the configured zone, locale and week start.
func (c Config) Engine(opts ...dateengine.Option) (*dateengine.TimeEngine, error) {
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("ui.timezone: %w", err)
	}
	start, err := ParseWeekday(c.Picker.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("picker.week_start: %w", err)
	}
	base := []dateengine.Option{
		dateengine.WithLocation(loc),
		dateengine.WithWeekStart(start),
		dateengine.WithLocale(dateengine.LookupLocale(c.UI.Locale)),
	}
	return dateengine.NewTimeEngine(append(base, opts...)...), nil
}

// PickerOptions turns the picker section into a rangepick.Config. Callbacks
// and shortcuts are left for the caller.
func (c Config) PickerOptions(e dateengine.Engine) (rangepick.Config, error) {
	mode, err := rangepick.ParseMode(c.Picker.Mode)
	if err != nil {
		return rangepick.Config{}, fmt.Errorf("picker.mode: %w", err)
	}
	dir, err := rangepick.ParseDirection(c.Picker.Direction)
	if err != nil {
		return rangepick.Config{}, fmt.Errorf("picker.direction: %w", err)
	}
	disabled, err := rangepick.NormalizeDisabled(c.Picker.Disabled)
	if err != nil {
		return rangepick.Config{}, fmt.Errorf("picker.disabled: %w", err)
	}
	allowEmpty, err := rangepick.NormalizeDisabled(c.Picker.AllowEmpty)
	if err != nil {
		return rangepick.Config{}, fmt.Errorf("picker.allow_empty: %w", err)
	}
	return rangepick.Config{
		Engine:       e,
		Picker:       mode,
		ShowTime:     c.Picker.ShowTime,
		Use12Hours:   c.Picker.Use12Hours,
		Format:       append([]string(nil), c.Picker.Format...),
		Separator:    c.Picker.Separator,
		Direction:    dir,
		Disabled:     disabled,
		AllowEmpty:   allowEmpty,
		EnforceOrder: c.Picker.EnforceOrder,
		AllowClear:   c.Picker.AllowClear,
	}, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("picker.mode", cfg.Picker.Mode)
	v.Set("picker.show_time", cfg.Picker.ShowTime)
	v.Set("picker.use_12_hours", cfg.Picker.Use12Hours)
	v.Set("picker.format", cfg.Picker.Format)
	v.Set("picker.separator", cfg.Picker.Separator)
	v.Set("picker.direction", cfg.Picker.Direction)
	if pair, err := rangepick.NormalizeDisabled(cfg.Picker.AllowEmpty); err == nil {
		v.Set("picker.allow_empty", pair[:])
	}
	if pair, err := rangepick.NormalizeDisabled(cfg.Picker.Disabled); err == nil {
		v.Set("picker.disabled", pair[:])
	}
	v.Set("picker.enforce_order", cfg.Picker.EnforceOrder)
	v.Set("picker.allow_clear", cfg.Picker.AllowClear)
	v.Set("picker.week_start", cfg.Picker.WeekStart)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.open_record_ttl", cfg.UI.OpenRecordTTL.String())
	if len(cfg.Keybindings) > 0 {
		v.Set("keybindings", cfg.Keybindings)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
