package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/presets"
)

func prepare(t *testing.T) (string, *repository.PresetRepo, *repository.LastRangeRepo) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "rangepick.db")
	db, err := Prepare(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, SeedDefaults(context.Background(), db))
	return path, repository.NewPresetRepo(db), repository.NewLastRangeRepo(db)
}

func TestPrepareMigratesAndSeeds(t *testing.T) {
	path, repo, _ := prepare(t)
	version, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, len(presets.Defaults()))
	assert.Equal(t, "Today", list[0].Name)
	assert.Equal(t, presets.KindRelative, list[0].Kind)

	// A second run changes nothing.
	require.NoError(t, RunMigrations(path))
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	path, repo, _ := prepare(t)
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, SeedDefaults(context.Background(), db))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, len(presets.Defaults()))
}

func TestPresetRepoCRUD(t *testing.T) {
	ctx := context.Background()
	_, repo, _ := prepare(t)

	next, err := repo.NextSortOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(presets.Defaults()), next)

	p := presets.Preset{ID: presets.NewID(), Name: "Launch", Kind: presets.KindAbsolute, Start: "2024-05-01", End: "2024-05-03", SortOrder: next}
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.ByName(ctx, "launch")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, *got)

	dup := p
	dup.ID = presets.NewID()
	assert.Error(t, repo.Upsert(ctx, dup), "names are unique")

	removed, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	missing, err := repo.ByName(ctx, "Launch")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLastRangeRepo(t *testing.T) {
	ctx := context.Background()
	_, _, repo := prepare(t)

	got, err := repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, got)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, repository.LastRange{PickerID: "main", Mode: "date", Start: &start}))
	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "date", got.Mode)
	require.NotNil(t, got.Start)
	assert.True(t, got.Start.Equal(start))
	assert.Nil(t, got.End)

	end := start.AddDate(0, 0, 6)
	require.NoError(t, repo.Save(ctx, repository.LastRange{PickerID: "main", Mode: "week", Start: &start, End: &end}))
	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "week", got.Mode)
	assert.True(t, got.End.Equal(end))

	require.NoError(t, repo.Clear(ctx, "main"))
	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, got)
}
