package ratings

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinRating = 0
	MaxRating = 10
)

// ValidationError is a client mistake; handlers answer it with 400 and Message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingFields = &ValidationError{Message: "Missing required fields"}
	ErrNotANumber    = &ValidationError{Message: "Rating must be a number"}
	ErrInvalidRating = &ValidationError{Message: "Rating must be between 0 and 10"}
)

// ParseRating coerces a decoded JSON value into a rating rounded to one decimal.
// Numbers and numeric strings are accepted; the result must lie in [0, 10].
func ParseRating(value any) (float64, error) {
	var rating float64
	switch v := value.(type) {
	case nil:
		return 0, ErrMissingFields
	case float64:
		rating = v
	case float32:
		rating = float64(v)
	case int:
		rating = float64(v)
	case int64:
		rating = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, ErrNotANumber
		}
		rating = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, ErrNotANumber
		}
		rating = f
	default:
		return 0, ErrNotANumber
	}

	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return 0, ErrInvalidRating
	}
	return RoundRating(rating), nil
}

// RoundRating rounds to one decimal place using the exact binary value,
// exact halves go to the even digit (0.25 -> 0.2, 0.75 -> 0.8)
func RoundRating(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
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
