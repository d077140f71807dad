package menu_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"DiningAPI/internal/databases"
	"DiningAPI/internal/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := databases.OpenAndMigrate(filepath.Join(t.TempDir(), "dining.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepositoryLatestEmpty(t *testing.T) {
	repo := menu.NewRepository(newTestDB(t))

	doc, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestRepositorySaveAndLatest(t *testing.T) {
	ctx := context.Background()
	repo := menu.NewRepository(newTestDB(t))

	first := menu.Document{{Name: "John Jay", Source: "columbia", Status: menu.StatusOpen, Meals: []menu.MealBlock{}}}
	second := menu.Document{
		{Name: "John Jay", Source: "columbia", Status: menu.StatusClosed, Meals: []menu.MealBlock{}},
		{Name: "Okenshields", Source: "cornell", Status: menu.StatusOpen, Meals: []menu.MealBlock{}},
	}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestRepositoryPrunesSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := menu.NewRepository(newTestDB(t))

	for i := 0; i < menu.SnapshotRetention+3; i++ {
		require.NoError(t, repo.Save(ctx, menu.Document{{Name: "Hall", Source: "columbia"}}))
	}
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, menu.SnapshotRetention, count)
}

func TestSeedFromFile(t *testing.T) {
	ctx := context.Background()
	repo := menu.NewRepository(newTestDB(t))
	now := time.Date(2025, time.March, 3, 6, 0, 0, 0, time.UTC)

	seeded, err := repo.SeedFromFile(ctx, filepath.Join(t.TempDir(), "missing.json"), now)
	require.NoError(t, err)
	assert.False(t, seeded)

	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Ferris", "source": "columbia", "food_items": ["Pasta"]}]`), 0o600))

	seeded, err = repo.SeedFromFile(ctx, path, now)
	require.NoError(t, err)
	assert.True(t, seeded)

	doc, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	assert.Equal(t, "Ferris", doc[0].Name)
	assert.Equal(t, menu.StatusOpen, doc[0].Status)

	seeded, err = repo.SeedFromFile(ctx, path, now)
	require.NoError(t, err)
	assert.False(t, seeded, "an existing document is never overwritten by the seed")
}
