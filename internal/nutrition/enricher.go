package nutrition

import (
	"context"
	"log/slog"
	"strings"

	"DiningAPI/internal/menu"

	"github.com/pkg/errors"
)

// Searcher looks up the best nutrition match for a food name
type Searcher interface {
	SearchFood(ctx context.Context, query string) (*Food, error)
}

// Enricher fills in the nutrition fields of menu items in place
type Enricher struct {
	search Searcher
	logger *slog.Logger
}

func NewEnricher(search Searcher, logger *slog.Logger) *Enricher {
	return &Enricher{search: search, logger: logger}
}

// Enrich looks every item without calories up once per distinct name.
// A failed lookup leaves that item as it was; a rejected API key aborts the whole pass.
func (e *Enricher) Enrich(ctx context.Context, doc menu.Document) error {
	cache := make(map[string]*Food)
	var enriched, missed int

	for h := range doc {
		for m := range doc[h].Meals {
			for s := range doc[h].Meals[m].Stations {
				items := doc[h].Meals[m].Stations[s].Items
				for i := range items {
					if items[i].Calories != nil {
						continue
					}
					food, err := e.lookup(ctx, cache, items[i].Name)
					if err != nil {
						return err
					}
					if food == nil {
						missed++
						continue
					}
					apply(&items[i], food)
					enriched++
				}
			}
		}
	}

	e.logger.Info("nutrition enrichment finished", "enriched", enriched, "missed", missed, "lookups", len(cache))
	return nil
}

func (e *Enricher) lookup(ctx context.Context, cache map[string]*Food, name string) (*Food, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if food, ok := cache[key]; ok {
		return food, nil
	}
	food, err := e.search.SearchFood(ctx, name)
	if errors.Is(err, ErrUnauthorized) {
		return nil, errors.Wrap(err, "enrich menu")
	}
	if err != nil {
		e.logger.Debug("nutrition lookup failed", "item", name, "error", err)
		food = nil
	}
	cache[key] = food
	return food, nil
}

func apply(item *menu.MenuItem, food *Food) {
	calories, protein, carbs, fat := food.Calories, food.Protein, food.Carbs, food.Fat
	estimated := !strings.EqualFold(strings.TrimSpace(food.Description), strings.TrimSpace(item.Name))
	item.Calories = &calories
	item.Protein = &protein
	item.Carbs = &carbs
	item.Fat = &fat
	item.Estimated = &estimated
}

// NopEnricher leaves documents untouched, used when no API key is configured
type NopEnricher struct{}

func (NopEnricher) Enrich(context.Context, menu.Document) error { return nil }

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
