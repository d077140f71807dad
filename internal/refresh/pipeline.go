package refresh

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"DiningAPI/internal/menu"
	"DiningAPI/internal/scraper"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrTooManyErrors discards a refresh whose halls are mostly in error
	ErrTooManyErrors = errors.New("refresh: more than half of the halls are in error")
	// ErrNoHalls discards a refresh that produced nothing and had nothing to fall back to
	ErrNoHalls = errors.New("refresh: no halls scraped")
)

// Store is where documents are read from and published to
type Store interface {
	Latest(ctx context.Context) (menu.Document, error)
	Save(ctx context.Context, doc menu.Document) error
}

// Enricher augments menu items with nutrition data in place
type Enricher interface {
	Enrich(ctx context.Context, doc menu.Document) error
}

// Pipeline is one scrape, fallback, enrich and publish pass
type Pipeline struct {
	scrapers []scraper.Scraper
	enricher Enricher
	store    Store
	logger   *slog.Logger
}

func NewPipeline(scrapers []scraper.Scraper, enricher Enricher, store Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		scrapers: scrapers,
		enricher: enricher,
		store:    store,
		logger:   logger,
	}
}

// Run never modifies the published document unless the new one is saved whole
func (p *Pipeline) Run(ctx context.Context) error {
	previous, err := p.store.Latest(ctx)
	if err != nil {
		p.logger.Warn("previous menu document unavailable, no fallback this run", "error", err)
		previous = nil
	}

	results := p.scrapeAll(ctx)

	var combined menu.Document
	for i, s := range p.scrapers {
		university := s.University()
		if !scrapeSucceeded(results[i], university) {
			if fallback := previous.BySource(university); len(fallback) > 0 {
				p.logger.Warn("scrape failed, carrying previous halls forward",
					"university", university, "halls", len(fallback))
				results[i] = fallback
			}
		}
		combined = append(combined, results[i]...)
	}

	if len(combined) == 0 {
		return ErrNoHalls
	}
	if errorCount := combined.ErrorCount(); errorCount*2 > len(combined) {
		p.logger.Warn("too many scraping errors, keeping previous menu document",
			"errors", errorCount, "halls", len(combined))
		return errors.Wrapf(ErrTooManyErrors, "%d/%d halls", errorCount, len(combined))
	}

	// Carried-forward halls share slices with the previous document
	combined = combined.Clone()
	if err := p.enricher.Enrich(ctx, combined); err != nil {
		return errors.Wrap(err, "nutrition enrichment")
	}

	if err := p.store.Save(ctx, combined); err != nil {
		return errors.Wrap(err, "save menu document")
	}
	p.logSummary(combined)
	return nil
}

// scrapeAll runs every scraper concurrently; a failed scraper leaves an empty slot
func (p *Pipeline) scrapeAll(ctx context.Context) []menu.Document {
	results := make([]menu.Document, len(p.scrapers))
	var g errgroup.Group
	for i, s := range p.scrapers {
		g.Go(func() error {
			doc, err := s.Scrape(ctx)
			if err != nil {
				p.logger.Error("scraper failed", "university", s.University(), "error", err)
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// scrapeSucceeded reports whether the result holds at least one usable hall of the university
func scrapeSucceeded(doc menu.Document, university string) bool {
	for _, hall := range doc.BySource(university) {
		if hall.Status != menu.StatusError {
			return true
		}
	}
	return false
}

// UniversitySummary counts one university's halls by outcome
type UniversitySummary struct {
	University string
	Open       int
	Closed     int
	Errors     int
	Items      int
}

// Summarize groups halls by lowercased source; items are counted for open halls only
func Summarize(doc menu.Document) []UniversitySummary {
	byUniversity := make(map[string]*UniversitySummary)
	for _, hall := range doc {
		university := strings.ToLower(hall.Source)
		if university == "" {
			university = "unknown"
		}
		summary, ok := byUniversity[university]
		if !ok {
			summary = &UniversitySummary{University: university}
			byUniversity[university] = summary
		}
		switch hall.Status {
		case menu.StatusOpen:
			summary.Open++
			summary.Items += hall.ItemCount()
		case menu.StatusClosed:
			summary.Closed++
		default:
			summary.Errors++
		}
	}

	out := make([]UniversitySummary, 0, len(byUniversity))
	for _, summary := range byUniversity {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].University < out[j].University })
	return out
}

func (p *Pipeline) logSummary(doc menu.Document) {
	var open, items int
	for _, s := range Summarize(doc) {
		p.logger.Info("refresh summary",
			"university", s.University, "open", s.Open, "closed", s.Closed, "errors", s.Errors, "items", s.Items)
		open += s.Open
		items += s.Items
	}
	p.logger.Info("menu document published", "halls", len(doc), "open", open, "items", items)
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
