package period

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"12:00 AM", 0, true},
		{"12:00 PM", 720, true},
		{"11:59 PM", 1439, true},
		{"7:00 AM", 420, true},
		{"10:30 AM", 630, true},
		{"1:05 pm", 785, true},
		{"  9:15   PM ", 1275, true},
		{"13:00 PM", 0, false},
		{"0:30 AM", 0, false},
		{"7:60 AM", 0, false},
		{"7:00", 0, false},
		{"7 AM", 0, false},
		{"seven AM", 0, false},
		{"7:00 XM", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTimeOfDay(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTimeOfDayRoundTrip(t *testing.T) {
	for minutes := 0; minutes < MinutesPerDay; minutes++ {
		hour, minute := minutes/60, minutes%60
		meridiem := "AM"
		if hour >= 12 {
			meridiem = "PM"
		}
		display := hour % 12
		if display == 0 {
			display = 12
		}
		input := fmt.Sprintf("%d:%02d %s", display, minute, meridiem)

		got, ok := ParseTimeOfDay(input)
		if assert.True(t, ok, input) {
			assert.Equal(t, minutes, got, input)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"hyphen", "7:00 AM - 10:30 AM", 420, 630, true},
		{"wraps midnight", "10:00 PM - 1:00 AM", 1320, 60, true},
		{"to separator", "11:00 AM to 2:00 PM", 660, 840, true},
		{"en dash", "5:00 PM – 8:00 PM", 1020, 1200, true},
		{"em dash", "5:00 PM — 8:00 PM", 1020, 1200, true},
		{"empty", "", 0, 0, false},
		{"no separator", "7:00 AM 10:30 AM", 0, 0, false},
		{"bad start", "noon - 2:00 PM", 0, 0, false},
		{"bad end", "11:00 AM - late", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ParseTimeRange(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		start   int
		end     int
		want    bool
	}{
		{"wraparound late evening", 23 * 60, 22 * 60, 6 * 60, true},
		{"wraparound early morning", 3 * 60, 22 * 60, 6 * 60, true},
		{"wraparound outside", 7 * 60, 22 * 60, 6 * 60, false},
		{"wraparound end exclusive", 6 * 60, 22 * 60, 6 * 60, false},
		{"plain inside", 8 * 60, 7 * 60, 10 * 60, true},
		{"plain start inclusive", 7 * 60, 7 * 60, 10 * 60, true},
		{"plain end exclusive", 10 * 60, 7 * 60, 10 * 60, false},
		{"plain before", 6 * 60, 7 * 60, 10 * 60, false},
		{"empty range", 7 * 60, 7 * 60, 7 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.current, tt.start, tt.end))
		})
	}
}
