package period

import (
	"strings"
	"time"

	"DiningAPI/internal/menu"
)

// Canonical meal periods
const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	LateNight = "late_night"
	AllDay    = "all_day"
	Unknown   = "unknown"
)

// DateLayout is the calendar date format ratings are keyed by
const DateLayout = "2006-01-02"

// NormalizeMealType maps a hall's human-entered meal label to a period key.
// Anything starting with "late" collapses to late_night; other labels are kept in snake case.
func NormalizeMealType(mealType string) string {
	value := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(mealType)), " ", "_")
	switch {
	case value == "":
		return Unknown
	case strings.HasPrefix(value, "late"):
		return LateNight
	}
	return value
}

// Resolver determines the active meal period of a hall in the institution's time zone
type Resolver struct {
	location *time.Location
	fallback func(time.Time) string
}

// NewResolver creates a resolver for the given reference zone using the default period table
// for halls that publish no meals
func NewResolver(location *time.Location) *Resolver {
	if location == nil {
		location = time.UTC
	}
	return &Resolver{location: location, fallback: DefaultPeriod}
}

// WithFallback replaces the period table used for halls without meal blocks
func (r *Resolver) WithFallback(fallback func(time.Time) string) *Resolver {
	return &Resolver{location: r.location, fallback: fallback}
}

// Location returns the reference zone
func (r *Resolver) Location() *time.Location {
	return r.location
}

// Resolve returns the meal period of hall at now
func (r *Resolver) Resolve(hall menu.HallEntry, now time.Time) string {
	return r.ResolveMeals(hall.Meals, now)
}

// ResolveMeals scans meals in order and returns the first block whose time range contains now.
// When nothing matches or parses the first block wins, so every hall with meals gets an answer.
func (r *Resolver) ResolveMeals(meals []menu.MealBlock, now time.Time) string {
	local := now.In(r.location)
	if len(meals) == 0 {
		return r.fallback(local)
	}

	current := local.Hour()*60 + local.Minute()
	for _, meal := range meals {
		start, end, ok := ParseTimeRange(meal.Time)
		if !ok {
			continue
		}
		if InRange(current, start, end) {
			return NormalizeMealType(meal.MealType)
		}
	}
	return NormalizeMealType(meals[0].MealType)
}

// Default returns the clock-based period at now, used where no hall is involved
func (r *Resolver) Default(now time.Time) string {
	return r.fallback(now.In(r.location))
}

// Date returns the reference-zone calendar date of now
func (r *Resolver) Date(now time.Time) string {
	return now.In(r.location).Format(DateLayout)
}

// DefaultPeriod is the generic time-of-day table:
// breakfast from 04:00, lunch from 11:00, dinner from 16:00, late night from 21:00.
// The caller converts t to the reference zone.
func DefaultPeriod(t time.Time) string {
	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= 4*60 && minutes < 11*60:
		return Breakfast
	case minutes >= 11*60 && minutes < 16*60:
		return Lunch
	case minutes >= 16*60 && minutes < 21*60:
		return Dinner
	}
	return LateNight
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
