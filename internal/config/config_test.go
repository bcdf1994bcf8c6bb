package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
)

func useConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	t.Setenv("RANGEPICK_CONFIG", path)
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	useConfigFile(t, "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "date", cfg.Picker.Mode)
	assert.True(t, cfg.Picker.EnforceOrder)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.OpenRecordTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	useConfigFile(t, `
[picker]
mode = "month"
disabled = [true, false]
allow_empty = "end"
week_start = "sun"
format = ["2006/01"]

[ui]
locale = "de-AT"
timezone = "UTC"
open_record_ttl = "1s"

[keybindings]
range-pick = ["enter", " "]
`)
	t.Setenv("RANGEPICK_PICKER_SEPARATOR", "bis")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bis", cfg.Picker.Separator)
	assert.Equal(t, []string{"enter", " "}, cfg.Keybindings["range-pick"])
	assert.Equal(t, time.Second, cfg.UI.OpenRecordTTL)

	e, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, dateengine.German, e.Locale())
	assert.Equal(t, time.Sunday, e.WeekStart())
	assert.Equal(t, time.UTC, e.Location())

	opts, err := cfg.PickerOptions(e)
	require.NoError(t, err)
	assert.Equal(t, rangepick.ModeMonth, opts.Picker)
	assert.Equal(t, [2]bool{true, false}, opts.Disabled)
	assert.Equal(t, [2]bool{false, true}, opts.AllowEmpty)
	assert.Equal(t, []string{"2006/01"}, opts.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"mode":      "[picker]\nmode = \"century\"\n",
		"disabled":  "[picker]\ndisabled = [true]\n",
		"weekday":   "[picker]\nweek_start = \"someday\"\n",
		"timezone":  "[ui]\ntimezone = \"Mars/Olympus\"\n",
		"direction": "[picker]\ndirection = \"up\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			useConfigFile(t, body)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDisabledShapeErrorIsTyped(t *testing.T) {
	useConfigFile(t, "[picker]\ndisabled = [true, false, true]\n")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, rangepick.ErrDisabledShape))
}

func TestSaveThenLoad(t *testing.T) {
	path := useConfigFile(t, "")
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Picker.Mode = "week"
	cfg.Picker.Disabled = "start"
	cfg.UI.Timezone = "UTC"
	cfg.Keybindings = map[string][]string{"range-ok": {"ctrl+s"}}
	require.NoError(t, Save(cfg))
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "week", again.Picker.Mode)
	assert.Equal(t, []string{"ctrl+s"}, again.Keybindings["range-ok"])
	disabled, err := rangepick.NormalizeDisabled(again.Picker.Disabled)
	require.NoError(t, err)
	assert.Equal(t, [2]bool{true, false}, disabled)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)
	d, err = ParseWeekday("")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)
}
