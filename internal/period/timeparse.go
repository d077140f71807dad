package period

import (
	"strconv"
	"strings"
)

// MinutesPerDay bounds every minute-of-day value
const MinutesPerDay = 24 * 60

var rangeSeparators = strings.NewReplacer(
	" to ", " - ",
	"–", "-", // en dash
	"—", "-", // em dash
)

// ParseTimeOfDay converts "H:MM AM" / "H:MM PM" into minutes since midnight.
// 12 AM is 0 and 12 PM is 720. ok is false for anything else.
func ParseTimeOfDay(s string) (minutes int, ok bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, false
	}
	clock, meridiem := parts[0], strings.ToUpper(parts[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, false
	}

	hourStr, minuteStr, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, false
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, false
	}

	switch {
	case meridiem == "PM" && hour != 12:
		hour += 12
	case meridiem == "AM" && hour == 12:
		hour = 0
	}
	return hour*60 + minute, true
}

// ParseTimeRange splits "7:00 AM - 10:30 AM" into start and end minutes.
// " to ", en dash and em dash separators are accepted as well.
func ParseTimeRange(s string) (start, end int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	normalized := rangeSeparators.Replace(s)
	startStr, endStr, found := strings.Cut(normalized, " - ")
	if !found {
		return 0, 0, false
	}
	if start, ok = ParseTimeOfDay(startStr); !ok {
		return 0, 0, false
	}
	if end, ok = ParseTimeOfDay(endStr); !ok {
		return 0, 0, false
	}
	return start, end, true
}

// InRange reports whether current falls in [start, end).
// A range whose end is before its start wraps past midnight.
func InRange(current, start, end int) bool {
	if end < start {
		return current >= start || current < end
	}
	return start <= current && current < end
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
