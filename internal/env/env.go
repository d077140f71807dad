package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetList splits a comma separated value, dropping blank entries
func GetList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return SplitList(value, ",")
}

// GetMap parses "key=value" pairs separated by commas, e.g. "columbia=https://a,cornell=https://b".
// Keys are lowercased. Malformed pairs are skipped.
func GetMap(key string, defaultValue map[string]string) map[string]string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return ParseMap(value)
}

// ParseMap is the parsing half of GetMap
func ParseMap(value string) map[string]string {
	result := make(map[string]string)
	for _, pair := range SplitList(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		result[k] = strings.TrimSpace(v)
	}
	return result
}

// SplitList splits on sep and trims every entry, dropping the empty ones
func SplitList(value, sep string) []string {
	var out []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Server configuration keys
const (
	EnvPort         = "PORT"
	EnvDatabasePath = "DATABASE_PATH"
	EnvLogLevel     = "LOG_LEVEL"
	EnvTimezone     = "TIMEZONE"
)

// Menu refresh keys
const (
	EnvAutoRefreshOnStart    = "AUTO_REFRESH_ON_START"
	EnvRefreshAt             = "REFRESH_AT"
	EnvSchedulerPollInterval = "SCHEDULER_POLL_INTERVAL"
	EnvScraperFeeds          = "SCRAPER_FEEDS"
	EnvScraperTimeout        = "SCRAPER_TIMEOUT"
	EnvMenuSeedFile          = "MENU_SEED_FILE"
	EnvMenuWaitTimeout       = "MENU_WAIT_TIMEOUT"

	// Nutrition enrichment
	EnvUSDAAPIKey  = "USDA_API_KEY"
	EnvUSDABaseURL = "USDA_BASE_URL"
	EnvUSDARPS     = "USDA_RPS"
)

// Ratings keys
const (
	EnvUniversityAliases = "UNIVERSITY_ALIASES"
	EnvRatingsRateLimit  = "RATINGS_RATE_LIMIT"
	EnvRatingsRateBurst  = "RATINGS_RATE_BURST"
)

/*
This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
