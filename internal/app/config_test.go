package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"DiningAPI/internal/menu"
	"DiningAPI/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REFRESH_AT", "UNIVERSITY_ALIASES", "USDA_API_KEY", "SCRAPER_FEEDS", "MENU_WAIT_TIMEOUT"} {
		// Setenv restores the original value when the test ends
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load(discardLogger())
	assert.Equal(t, "9237", cfg.Port)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 3, cfg.RefreshHour)
	assert.Equal(t, 0, cfg.RefreshMinute)
	assert.Equal(t, menu.DefaultAliases(), cfg.Aliases)
	assert.Equal(t, 15*time.Second, cfg.MenuWaitTimeout)
	assert.Nil(t, NutritionSearcher(cfg))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TIMEZONE", "Not/AZone")
	t.Setenv("REFRESH_AT", "4:30")
	t.Setenv("UNIVERSITY_ALIASES", "columbia=columbia|barnard,cornell=cornell")
	t.Setenv("SCRAPER_FEEDS", "columbia=https://a.example/feed")
	t.Setenv("USDA_API_KEY", "key")
	t.Setenv("RATINGS_RATE_LIMIT", "0.5")

	cfg := Load(discardLogger())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC, cfg.Location, "an invalid zone falls back to UTC")
	assert.Equal(t, 4, cfg.RefreshHour)
	assert.Equal(t, 30, cfg.RefreshMinute)
	assert.Equal(t, []string{"cornell"}, cfg.Aliases["cornell"])
	assert.Equal(t, map[string]string{"columbia": "https://a.example/feed"}, cfg.ScraperFeeds)
	assert.Equal(t, 0.5, cfg.RatingsRPS)

	search := NutritionSearcher(cfg)
	require.NotNil(t, search)
	assert.IsType(t, &nutrition.Client{}, search)
}

func TestLoadInvalidRefreshTime(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REFRESH_AT", "midnight")

	cfg := Load(discardLogger())
	assert.Equal(t, 3, cfg.RefreshHour)
	assert.Equal(t, 0, cfg.RefreshMinute)
}

func TestNewLogger(t *testing.T) {
	assert.True(t, NewLogger("debug").Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewLogger("warn").Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, NewLogger("").Enabled(context.Background(), slog.LevelInfo))
}
