package menu

import "strings"

// HallStatus is the scraper-reported state of a dining hall
type HallStatus string

const (
	StatusOpen       HallStatus = "open"
	StatusClosed     HallStatus = "closed"
	StatusOpenNoMenu HallStatus = "open_no_menu"
	StatusError      HallStatus = "error"
	StatusUnknown    HallStatus = "unknown"
)

// Document is one complete menu snapshot, replaced wholesale on every successful refresh
type Document []HallEntry

// HallEntry is a dining hall in the canonical multi-meal schema.
// Identity is (Name, Source); names repeat across universities.
type HallEntry struct {
	Name           string      `json:"name"`
	Source         string      `json:"source"`
	Status         HallStatus  `json:"status"`
	Meals          []MealBlock `json:"meals"`
	OperatingHours *string     `json:"operating_hours"`
	ScrapedAt      string      `json:"scraped_at"`
	IsOpen         *bool       `json:"is_open,omitempty"`
}

// MealBlock is one service period as published by the hall, e.g. "Late Night" / "10:00 PM - 1:00 AM"
type MealBlock struct {
	MealType string    `json:"meal_type"`
	Time     string    `json:"time"`
	Stations []Station `json:"stations"`
}

type Station struct {
	Station string     `json:"station"`
	Items   []MenuItem `json:"items"`
}

// MenuItem nutrition fields are nil until enrichment has run, never zero-filled
type MenuItem struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Allergens    []string `json:"allergens"`
	DietaryPrefs []string `json:"dietary_prefs"`
	Calories     *float64 `json:"calories"`
	Protein      *float64 `json:"protein"`
	Carbs        *float64 `json:"carbs"`
	Fat          *float64 `json:"fat"`
	Estimated    *bool    `json:"estimated"`
}

// Key returns the identity used to tell identically named halls apart
func (h HallEntry) Key() string {
	return h.Source + ":" + h.Name
}

// ItemCount counts the items across every meal and station
func (h HallEntry) ItemCount() int {
	count := 0
	for _, meal := range h.Meals {
		for _, station := range meal.Stations {
			count += len(station.Items)
		}
	}
	return count
}

// Enriched reports whether nutrition data has been attached
func (i MenuItem) Enriched() bool {
	return i.Calories != nil
}

// BySource returns the halls scraped from the given university tag, ignoring case
func (d Document) BySource(source string) Document {
	var out Document
	for _, hall := range d {
		if strings.EqualFold(hall.Source, source) {
			out = append(out, hall)
		}
	}
	return out
}

// ErrorCount counts halls whose scrape ended in error
func (d Document) ErrorCount() int {
	count := 0
	for _, hall := range d {
		if hall.Status == StatusError {
			count++
		}
	}
	return count
}

// Clone returns a deep copy so enrichment can mutate items without touching a served document
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, hall := range d {
		out[i] = hall
		out[i].Meals = make([]MealBlock, len(hall.Meals))
		for j, meal := range hall.Meals {
			out[i].Meals[j] = meal
			out[i].Meals[j].Stations = make([]Station, len(meal.Stations))
			for k, station := range meal.Stations {
				out[i].Meals[j].Stations[k] = station
				out[i].Meals[j].Stations[k].Items = append([]MenuItem(nil), station.Items...)
			}
		}
	}
	return out
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
