package ratings

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ratings repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes r, replacing the value of an existing row with the same key.
// A single statement, so concurrent writes to one key end in last-write-wins.
func (r *Repository) Upsert(ctx context.Context, rating Rating) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (device_id, hall_name, university, meal_period, rating, date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (device_id, hall_name, university, meal_period, date)
		DO UPDATE SET rating = excluded.rating, updated_at = CURRENT_TIMESTAMP
	`, rating.DeviceID, rating.HallName, rating.University, rating.MealPeriod, rating.Rating, rating.Date)
	return errors.Wrap(err, "upsert rating")
}

// Get is a point lookup; found is false when the device has not rated this key
func (r *Repository) Get(ctx context.Context, deviceID, hallName, university, mealPeriod, date string) (value float64, found bool, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT rating FROM ratings
		WHERE device_id = ? AND hall_name = ? AND university = ? AND meal_period = ? AND date = ?
	`, deviceID, hallName, university, mealPeriod, date).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "get rating")
	}
	return value, true, nil
}

// Averages aggregates every (hall, university, period) on date, optionally limited to some universities.
// Averages are not rounded so callers can combine rows by count.
func (r *Repository) Averages(ctx context.Context, date string, universities []string) ([]HallPeriodAverage, error) {
	query := `
		SELECT hall_name, university, meal_period, AVG(rating), COUNT(*)
		FROM ratings
		WHERE date = ?`
	args := []any{date}
	if len(universities) > 0 {
		query += " AND university IN (" + placeholders(len(universities)) + ")"
		for _, u := range universities {
			args = append(args, u)
		}
	}
	query += " GROUP BY hall_name, university, meal_period"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query rating averages")
	}
	defer rows.Close()

	var result []HallPeriodAverage
	for rows.Next() {
		var a HallPeriodAverage
		if err := rows.Scan(&a.HallName, &a.University, &a.MealPeriod, &a.Average, &a.Count); err != nil {
			return nil, errors.Wrap(err, "scan rating average")
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// DeviceCounts returns per-device rating totals for a period and date,
// ordered by each device's first stored rating
func (r *Repository) DeviceCounts(ctx context.Context, mealPeriod, date string) ([]DeviceCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT device_id, COUNT(*)
		FROM ratings
		WHERE meal_period = ? AND date = ?
		GROUP BY device_id
		ORDER BY MIN(id)
	`, mealPeriod, date)
	if err != nil {
		return nil, errors.Wrap(err, "query device counts")
	}
	defer rows.Close()

	var counts []DeviceCount
	for rows.Next() {
		var dc DeviceCount
		if err := rows.Scan(&dc.DeviceID, &dc.Total); err != nil {
			return nil, errors.Wrap(err, "scan device count")
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// placeholders returns n placeholders for SQLite
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
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
