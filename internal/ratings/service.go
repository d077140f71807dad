package ratings

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"DiningAPI/internal/menu"
	"DiningAPI/internal/period"
)

// Store is the keyed rating storage the aggregator needs
type Store interface {
	Upsert(ctx context.Context, rating Rating) error
	Get(ctx context.Context, deviceID, hallName, university, mealPeriod, date string) (float64, bool, error)
	Averages(ctx context.Context, date string, universities []string) ([]HallPeriodAverage, error)
	DeviceCounts(ctx context.Context, mealPeriod, date string) ([]DeviceCount, error)
}

// MenuSource provides the current canonical menu document, nil when none exists yet
type MenuSource interface {
	Latest(ctx context.Context) (menu.Document, error)
}

// Service binds ratings to the meal period each hall is serving at submission time
// and aggregates them per hall and period
type Service struct {
	store    Store
	menus    MenuSource
	resolver *period.Resolver
	aliases  menu.AliasTable
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new rating aggregator
func NewService(store Store, menus MenuSource, resolver *period.Resolver, aliases menu.AliasTable, logger *slog.Logger) *Service {
	if aliases == nil {
		aliases = menu.DefaultAliases()
	}
	return &Service{
		store:    store,
		menus:    menus,
		resolver: resolver,
		aliases:  aliases,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock, for tests and replays
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SubmitRating validates and stores a rating under the hall's current meal period and today's date
func (s *Service) SubmitRating(ctx context.Context, req SubmitRequest) (*Submission, error) {
	return s.SubmitRatingAt(ctx, req, s.now())
}

// SubmitRatingAt is SubmitRating for the instant now
func (s *Service) SubmitRatingAt(ctx context.Context, req SubmitRequest, now time.Time) (*Submission, error) {
	req.DeviceID = strings.TrimSpace(req.DeviceID)
	req.HallName = strings.TrimSpace(req.HallName)
	req.University = strings.TrimSpace(req.University)
	if req.DeviceID == "" || req.HallName == "" || req.University == "" || req.Rating == nil {
		return nil, ErrMissingFields
	}
	value, err := ParseRating(req.Rating)
	if err != nil {
		return nil, err
	}

	doc := s.currentDocument(ctx)
	mealPeriod, university := s.resolveHall(doc, req.HallName, req.University, now)
	date := s.resolver.Date(now)

	rating := Rating{
		DeviceID:   req.DeviceID,
		HallName:   req.HallName,
		University: university,
		MealPeriod: mealPeriod,
		Rating:     value,
		Date:       date,
	}
	if err := s.store.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	s.logger.Debug("rating stored",
		"hall", rating.HallName, "university", rating.University,
		"meal_period", rating.MealPeriod, "date", rating.Date)

	return &Submission{
		Status:     "success",
		MealPeriod: mealPeriod,
		Rating:     value,
		Date:       date,
	}, nil
}

// GetAverages returns, for every hall of the current document, the average for the period
// that hall is serving right now. Halls without ratings for that period are omitted.
// With a university the keys are hall names, otherwise "<source>:<name>".
func (s *Service) GetAverages(ctx context.Context, university string) (*Averages, error) {
	return s.AveragesAt(ctx, university, s.now())
}

// AveragesAt resolves every hall's period at now and reads the averages of now's date
func (s *Service) AveragesAt(ctx context.Context, university string, now time.Time) (*Averages, error) {
	university = strings.ToLower(strings.TrimSpace(university))
	date := s.resolver.Date(now)

	var sources []string
	if university != "" {
		sources = s.aliases.Sources(university)
	}
	rows, err := s.store.Averages(ctx, date, sources)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]map[string]RatingAverage)
	for _, row := range rows {
		key := hallKey(row.University, row.HallName, false)
		if stored[key] == nil {
			stored[key] = make(map[string]RatingAverage)
		}
		stored[key][row.MealPeriod] = row.RatingAverage
	}

	result := &Averages{
		MealPeriod: s.resolver.Default(now),
		Date:       date,
		Ratings:    make(map[string]RatingAverage),
	}
	seen := make(map[string]bool)
	for _, hall := range s.aliases.Filter(s.currentDocument(ctx), university) {
		full := hallKey(strings.ToLower(hall.Source), hall.Name, false)
		if seen[full] {
			continue
		}
		seen[full] = true
		current := s.resolver.Resolve(hall, now)
		avg, ok := stored[full][current]
		if !ok {
			continue
		}
		key := hallKey(strings.ToLower(hall.Source), hall.Name, university != "")
		if prev, dup := result.Ratings[key]; dup {
			// Aliased sources sharing a hall name report one combined average
			s.logger.Debug("merging averages of identically named halls", "hall", hall.Name, "university", university)
			avg = mergeAverages(prev, avg)
		}
		result.Ratings[key] = avg
	}
	for key, avg := range result.Ratings {
		avg.Average = RoundRating(avg.Average)
		result.Ratings[key] = avg
	}
	return result, nil
}

// GetUserRating reports what the device rated the hall for its current period today
func (s *Service) GetUserRating(ctx context.Context, deviceID, hallName, university string) (*UserRating, error) {
	deviceID = strings.TrimSpace(deviceID)
	hallName = strings.TrimSpace(hallName)
	university = strings.TrimSpace(university)
	if deviceID == "" || hallName == "" || university == "" {
		return nil, ErrMissingFields
	}
	now := s.now()
	mealPeriod, stored := s.resolveHall(s.currentDocument(ctx), hallName, university, now)
	return s.LookupUserRating(ctx, deviceID, hallName, stored, mealPeriod, s.resolver.Date(now))
}

// LookupUserRating is the point lookup behind GetUserRating for an explicit key
func (s *Service) LookupUserRating(ctx context.Context, deviceID, hallName, university, mealPeriod, date string) (*UserRating, error) {
	value, found, err := s.store.Get(ctx, deviceID, hallName, university, mealPeriod, date)
	if err != nil {
		return nil, err
	}
	result := &UserRating{HasRated: found, MealPeriod: mealPeriod}
	if found {
		result.Rating = &value
	}
	return result, nil
}

// CurrentLeaderboard ranks devices for the clock-based period of today
func (s *Service) CurrentLeaderboard(ctx context.Context, limit int) (*Leaderboard, error) {
	now := s.now()
	mealPeriod, date := s.resolver.Default(now), s.resolver.Date(now)
	entries, err := s.GetLeaderboard(ctx, limit, mealPeriod, date)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{MealPeriod: mealPeriod, Date: date, Leaderboard: entries}, nil
}

// GetLeaderboard ranks devices by rating count for a period and date, limit capped at 100
func (s *Service) GetLeaderboard(ctx context.Context, limit int, mealPeriod, date string) ([]LeaderboardEntry, error) {
	counts, err := s.store.DeviceCounts(ctx, mealPeriod, date)
	if err != nil {
		return nil, err
	}
	entries := RankDevices(counts)
	if limit = ClampLimit(limit); len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// CurrentUserStats is GetUserStats for the clock-based period of today
func (s *Service) CurrentUserStats(ctx context.Context, deviceID string) (*UserStats, error) {
	deviceID = strings.TrimSpace(deviceID)
	now := s.now()
	return s.GetUserStats(ctx, deviceID, s.resolver.Default(now), s.resolver.Date(now))
}

// GetUserStats returns the device's rank and total under the leaderboard ordering
func (s *Service) GetUserStats(ctx context.Context, deviceID, mealPeriod, date string) (*UserStats, error) {
	if deviceID == "" {
		return nil, ErrMissingFields
	}
	counts, err := s.store.DeviceCounts(ctx, mealPeriod, date)
	if err != nil {
		return nil, err
	}
	stats := &UserStats{MealPeriod: mealPeriod, Date: date}
	for _, entry := range RankDevices(counts) {
		if entry.DeviceID == deviceID {
			rank := entry.Rank
			stats.Rank = &rank
			stats.TotalRatings = entry.TotalRatings
			break
		}
	}
	return stats, nil
}

// resolveHall finds the hall and returns its current period plus the university tag ratings are stored under.
// Unknown halls use the clock-based period and the requested tag.
func (s *Service) resolveHall(doc menu.Document, hallName, university string, now time.Time) (mealPeriod, storedUniversity string) {
	hall := s.aliases.FindHall(doc, hallName, university)
	if hall == nil {
		return s.resolver.Default(now), strings.ToLower(university)
	}
	return s.resolver.Resolve(*hall, now), strings.ToLower(hall.Source)
}

// currentDocument treats an unreadable document like a missing one so ratings keep working
func (s *Service) currentDocument(ctx context.Context) menu.Document {
	doc, err := s.menus.Latest(ctx)
	if err != nil {
		s.logger.Warn("menu document unavailable, using default periods", "error", err)
		return nil
	}
	return doc
}

// mergeAverages combines two unrounded averages weighted by their counts
func mergeAverages(a, b RatingAverage) RatingAverage {
	count := a.Count + b.Count
	if count == 0 {
		return RatingAverage{}
	}
	return RatingAverage{
		Average: (a.Average*float64(a.Count) + b.Average*float64(b.Count)) / float64(count),
		Count:   count,
	}
}

func hallKey(university, hallName string, scoped bool) string {
	if scoped {
		return hallName
	}
	return university + ":" + hallName
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
