package app

import (
	"log/slog"
	"time"

	"DiningAPI/internal/nutrition"
	"DiningAPI/internal/refresh"
	"DiningAPI/internal/scraper"
)

const usdaTimeout = 12 * time.Second

// NutritionSearcher returns the USDA client, or nil when no API key is configured
func NutritionSearcher(cfg Config) nutrition.Searcher {
	if cfg.USDAAPIKey == "" {
		return nil
	}
	return nutrition.NewClient(cfg.USDAAPIKey, cfg.USDABaseURL, cfg.USDARPS, usdaTimeout)
}

// NewPipeline assembles the scrape and enrich pass publishing into store
func NewPipeline(cfg Config, store refresh.Store, logger *slog.Logger) *refresh.Pipeline {
	scrapers := scraper.FromFeeds(cfg.ScraperFeeds, cfg.ScraperTimeout)
	if len(scrapers) == 0 {
		logger.Warn("no scraper feeds configured, refreshes have nothing to publish")
	}

	var enricher refresh.Enricher = nutrition.NopEnricher{}
	if search := NutritionSearcher(cfg); search != nil {
		enricher = nutrition.NewEnricher(search, logger.With("component", "nutrition"))
	} else {
		logger.Info("USDA_API_KEY not set, nutrition enrichment disabled")
	}

	return refresh.NewPipeline(scrapers, enricher, store, logger.With("component", "pipeline"))
}
