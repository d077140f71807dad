package ratings

// Rating is one device's score for a hall during one meal period on one date.
// (DeviceID, HallName, University, MealPeriod, Date) is unique; resubmitting overwrites.
type Rating struct {
	DeviceID   string  `json:"device_id"`
	HallName   string  `json:"hall_name"`
	University string  `json:"university"`
	MealPeriod string  `json:"meal_period"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
}

// RatingAverage is derived from the stored rows on every query
type RatingAverage struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// HallPeriodAverage is one aggregated row as returned by the store
type HallPeriodAverage struct {
	HallName   string
	University string
	MealPeriod string
	RatingAverage
}

// DeviceCount is a device's number of ratings, in first-submission order
type DeviceCount struct {
	DeviceID string
	Total    int
}

// SubmitRequest is the POST /api/ratings body. Rating is left untyped so that
// numeric strings can be accepted and everything else reported as a validation error.
type SubmitRequest struct {
	DeviceID   string `json:"device_id"`
	HallName   string `json:"hall_name"`
	University string `json:"university"`
	Rating     any    `json:"rating"`
}

// Submission is what a successful submit reports back
type Submission struct {
	Status     string  `json:"status"`
	MealPeriod string  `json:"meal_period"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
}

// Averages is the per-hall view for each hall's current period
type Averages struct {
	MealPeriod string                   `json:"meal_period"`
	Date       string                   `json:"date"`
	Ratings    map[string]RatingAverage `json:"ratings"`
}

// UserRating distinguishes "not rated" from any rating value, including 0
type UserRating struct {
	HasRated   bool     `json:"has_rated"`
	Rating     *float64 `json:"rating,omitempty"`
	MealPeriod string   `json:"meal_period"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	TotalRatings int    `json:"total_ratings"`
	DeviceID     string `json:"-"` // Never expose
}

type Leaderboard struct {
	MealPeriod  string             `json:"meal_period"`
	Date        string             `json:"date"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// UserStats Rank is nil for a device without ratings
type UserStats struct {
	Rank         *int   `json:"rank"`
	TotalRatings int    `json:"total_ratings"`
	MealPeriod   string `json:"meal_period"`
	Date         string `json:"date"`
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
