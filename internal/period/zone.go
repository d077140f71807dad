package period

import (
	"fmt"
	"time"
)

// DefaultTimezone is the dining services' local zone
const DefaultTimezone = "America/New_York"

// LoadLocation parses an IANA zone name, falling back to DefaultTimezone for an empty name.
// On error the returned location is UTC so callers can log and keep serving.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	if tz == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
