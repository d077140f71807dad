package menu

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HallDocument is a hall record as it arrives from a scraper or an old menu file.
// It is either a CanonicalHall or a LegacyHall.
type HallDocument interface {
	isHallDocument()
}

// CanonicalHall already carries the meals schema and passes through Normalize untouched
type CanonicalHall struct {
	HallEntry
}

// LegacyHall is the older flat shape: a single meal period and a flat item list.
// Pointer fields distinguish "absent" from "empty".
type LegacyHall struct {
	Name                   *string      `json:"name"`
	Source                 *string      `json:"source"`
	Status                 *HallStatus  `json:"status"`
	MealPeriod             *string      `json:"meal_period"`
	Hours                  *string      `json:"hours"`
	OperatingHours         *string      `json:"operating_hours"`
	FoodItems              []LegacyItem `json:"food_items"`
	FoodItemsWithNutrition []LegacyItem `json:"food_items_with_nutrition"`
	ScrapedAt              *string      `json:"scraped_at"`
	IsOpen                 *bool        `json:"is_open"`
}

func (CanonicalHall) isHallDocument() {}
func (LegacyHall) isHallDocument()    {}

// LegacyItem is either a bare item name or an object with optional nutrition keys
type LegacyItem struct {
	Name   string
	Fields map[string]any // nil when the item was a bare string
}

func (i *LegacyItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*i = LegacyItem{Name: name}
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, "legacy item is neither a string nor an object")
	}
	if fields == nil {
		fields = map[string]any{}
	}
	name, _ = fields["name"].(string)
	*i = LegacyItem{Name: name, Fields: fields}
	return nil
}

const (
	legacyDefaultName       = "Dining Hall"
	legacyDefaultSource     = "legacy"
	legacyDefaultMealPeriod = "meal"
	legacyStationName       = "Menu"
)

// titleCase builds a fresh caser per call, casers keep state and must not be shared.
// Underscores start a new word, so "all_day" becomes "All_Day".
func titleCase(s string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "_")
}

// DecodeHall classifies a raw hall record by the presence of a "meals" key
func DecodeHall(data []byte) (HallDocument, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrap(err, "decode hall")
	}
	if _, ok := keys["meals"]; ok {
		var hall HallEntry
		if err := json.Unmarshal(data, &hall); err != nil {
			return nil, errors.Wrap(err, "decode canonical hall")
		}
		return CanonicalHall{HallEntry: hall}, nil
	}
	var legacy LegacyHall
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, errors.Wrap(err, "decode legacy hall")
	}
	return legacy, nil
}

// DecodeDocument decodes a JSON array of halls in either schema and normalizes every entry
func DecodeDocument(data []byte, now time.Time) (Document, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode menu document")
	}
	doc := make(Document, 0, len(raw))
	for i, r := range raw {
		hall, err := DecodeHall(r)
		if err != nil {
			return nil, errors.Wrapf(err, "hall %d", i)
		}
		doc = append(doc, Normalize(hall, now))
	}
	return doc, nil
}

// Normalize converts any hall document to the canonical schema.
// Canonical input is returned as is, so Normalize is idempotent.
// now is only used as the scraped_at default for legacy records without one.
func Normalize(doc HallDocument, now time.Time) HallEntry {
	switch d := doc.(type) {
	case CanonicalHall:
		return d.HallEntry
	case *CanonicalHall:
		return d.HallEntry
	case LegacyHall:
		return d.upgrade(now)
	case *LegacyHall:
		return d.upgrade(now)
	}
	return HallEntry{Name: legacyDefaultName, Source: legacyDefaultSource, Status: StatusUnknown, Meals: []MealBlock{}}
}

// NormalizeDocument passes every hall of an already decoded document through Normalize
func NormalizeDocument(doc Document) Document {
	out := make(Document, len(doc))
	for i, hall := range doc {
		out[i] = Normalize(CanonicalHall{HallEntry: hall}, time.Time{})
	}
	return out
}

func (l LegacyHall) upgrade(now time.Time) HallEntry {
	source := l.FoodItemsWithNutrition
	if len(source) == 0 {
		source = l.FoodItems
	}
	items := make([]MenuItem, 0, len(source))
	for _, raw := range source {
		if raw.Name == "" {
			continue
		}
		items = append(items, raw.toMenuItem())
	}

	mealPeriod := legacyDefaultMealPeriod
	if l.MealPeriod != nil {
		mealPeriod = *l.MealPeriod
	}

	// "hours" wins over "operating_hours" whenever it is present
	hours := l.Hours
	if hours == nil {
		hours = l.OperatingHours
	}
	timeRange := ""
	if hours != nil {
		timeRange = *hours
	}

	status := StatusOpenNoMenu
	if len(items) > 0 {
		status = StatusOpen
	}
	if l.Status != nil {
		status = *l.Status
	}

	hall := HallEntry{
		Name:   legacyDefaultName,
		Source: legacyDefaultSource,
		Status: status,
		Meals: []MealBlock{{
			MealType: titleCase(mealPeriod),
			Time:     timeRange,
			Stations: []Station{{Station: legacyStationName, Items: items}},
		}},
		OperatingHours: hours,
		ScrapedAt:      now.Format("2006-01-02T15:04:05.000000"),
		IsOpen:         l.IsOpen,
	}
	if l.Name != nil {
		hall.Name = *l.Name
	}
	if l.Source != nil {
		hall.Source = *l.Source
	}
	if l.ScrapedAt != nil {
		hall.ScrapedAt = *l.ScrapedAt
	}
	return hall
}

func (i LegacyItem) toMenuItem() MenuItem {
	item := MenuItem{
		Name:         i.Name,
		Allergens:    []string{},
		DietaryPrefs: []string{},
	}
	if i.Fields == nil {
		return item
	}
	item.Calories = coalesceFloat(i.Fields, "calories")
	item.Protein = coalesceFloat(i.Fields, "protein", "protein_g")
	item.Carbs = coalesceFloat(i.Fields, "carbs", "carbs_g")
	item.Fat = coalesceFloat(i.Fields, "fat", "fat_g")
	estimated := truthy(i.Fields["estimated"])
	item.Estimated = &estimated
	return item
}

// coalesceFloat returns the value of the first key present in fields, even when that value is null
func coalesceFloat(fields map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			return toFloat(v)
		}
	}
	return nil
}

func toFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	}
	return true
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
