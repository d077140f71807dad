package ratings

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/mr-tron/base58"
)

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100

	publicIDBytes = 8
)

// ClampLimit applies the leaderboard default and cap
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}

// RankDevices orders devices by total descending. Ties keep their input order
// and ranks are assigned sequentially.
func RankDevices(counts []DeviceCount) []LeaderboardEntry {
	sorted := append([]DeviceCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})

	entries := make([]LeaderboardEntry, len(sorted))
	for i, dc := range sorted {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:         rank,
			UserID:       PublicID(dc.DeviceID),
			DisplayName:  fmt.Sprintf("User #%d", rank),
			TotalRatings: dc.Total,
			DeviceID:     dc.DeviceID,
		}
	}
	return entries
}

// PublicID is a short stable handle for a device; raw device IDs stay out of public responses
func PublicID(deviceID string) string {
	sum := sha256.Sum256([]byte(deviceID))
	return base58.Encode(sum[:publicIDBytes])
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
