package app

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"DiningAPI/internal/env"
	"DiningAPI/internal/menu"
	"DiningAPI/internal/period"
	"DiningAPI/internal/refresh"
)

// Config is everything the server and the CLI read from the environment
type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string
	Location     *time.Location

	AutoRefreshOnStart bool
	RefreshHour        int
	RefreshMinute      int
	PollInterval       time.Duration
	ScraperFeeds       map[string]string
	ScraperTimeout     time.Duration
	MenuSeedFile       string
	MenuWaitTimeout    time.Duration

	USDAAPIKey  string
	USDABaseURL string
	USDARPS     float64

	Aliases      menu.AliasTable
	RatingsRPS   float64
	RatingsBurst int
}

// Load reads the configuration. Invalid values are logged and replaced by defaults.
func Load(logger *slog.Logger) Config {
	cfg := Config{
		Port:               env.GetEnv(env.EnvPort, "9237"),
		DatabasePath:       env.GetEnv(env.EnvDatabasePath, "./internal/databases/dining.db"),
		LogLevel:           env.GetEnv(env.EnvLogLevel, "info"),
		AutoRefreshOnStart: env.GetBool(env.EnvAutoRefreshOnStart, true),
		PollInterval:       env.GetDuration(env.EnvSchedulerPollInterval, refresh.DefaultPollInterval),
		ScraperFeeds:       env.GetMap(env.EnvScraperFeeds, map[string]string{}),
		ScraperTimeout:     env.GetDuration(env.EnvScraperTimeout, 30*time.Second),
		MenuSeedFile:       env.GetEnv(env.EnvMenuSeedFile, ""),
		MenuWaitTimeout:    env.GetDuration(env.EnvMenuWaitTimeout, 15*time.Second),
		USDAAPIKey:         env.GetEnv(env.EnvUSDAAPIKey, ""),
		USDABaseURL:        env.GetEnv(env.EnvUSDABaseURL, ""),
		USDARPS:            env.GetFloat(env.EnvUSDARPS, 5),
		Aliases:            menu.DefaultAliases(),
		RatingsRPS:         env.GetFloat(env.EnvRatingsRateLimit, 2),
		RatingsBurst:       env.GetInt(env.EnvRatingsRateBurst, 5),
	}

	loc, err := period.LoadLocation(env.GetEnv(env.EnvTimezone, period.DefaultTimezone))
	if err != nil {
		logger.Warn("falling back to UTC", "error", err)
	}
	cfg.Location = loc

	cfg.RefreshHour, cfg.RefreshMinute, err = refresh.ParseClock(env.GetEnv(env.EnvRefreshAt, "03:00"))
	if err != nil {
		logger.Warn("invalid refresh time, using 03:00", "error", err)
		cfg.RefreshHour, cfg.RefreshMinute = 3, 0
	}

	if raw := env.GetEnv(env.EnvUniversityAliases, ""); raw != "" {
		if aliases := menu.ParseAliases(raw); len(aliases) > 0 {
			cfg.Aliases = aliases
		}
	}
	return cfg
}

// NewLogger builds the process logger at the given level (debug, info, warn, error)
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
