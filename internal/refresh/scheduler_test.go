package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eastern = time.FixedZone("EST", -5*60*60)

func TestDailyAt(t *testing.T) {
	next := DailyAt(3, 0, eastern)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later the same day",
			now:  time.Date(2025, time.March, 3, 1, 0, 0, 0, eastern),
			want: time.Date(2025, time.March, 3, 3, 0, 0, 0, eastern),
		},
		{
			name: "exactly at the time rolls to tomorrow",
			now:  time.Date(2025, time.March, 3, 3, 0, 0, 0, eastern),
			want: time.Date(2025, time.March, 4, 3, 0, 0, 0, eastern),
		},
		{
			name: "after the time",
			now:  time.Date(2025, time.March, 3, 22, 0, 0, 0, eastern),
			want: time.Date(2025, time.March, 4, 3, 0, 0, 0, eastern),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, time.March, 31, 12, 0, 0, 0, eastern),
			want: time.Date(2025, time.April, 1, 3, 0, 0, 0, eastern),
		},
		{
			name: "input in another zone",
			now:  time.Date(2025, time.March, 3, 7, 30, 0, 0, time.UTC), // 02:30 eastern
			want: time.Date(2025, time.March, 3, 3, 0, 0, 0, eastern),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(next(tt.now)), "got %s", next(tt.now))
		})
	}
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("03:00")
	require.NoError(t, err)
	assert.Equal(t, 3, hour)
	assert.Equal(t, 0, minute)

	hour, minute, err = ParseClock(" 23:45 ")
	require.NoError(t, err)
	assert.Equal(t, 23, hour)
	assert.Equal(t, 45, minute)

	for _, bad := range []string{"", "3", "24:00", "03:60", "aa:00", "03:bb"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestSchedulerTick(t *testing.T) {
	start := time.Date(2025, time.March, 3, 1, 0, 0, 0, eastern)
	s := NewScheduler(time.Minute, discardLogger())
	s.now = func() time.Time { return start }

	var runs int
	s.Add("daily", DailyAt(3, 0, eastern), func() { runs++ })

	due, ok := s.NextRun("daily")
	require.True(t, ok)
	assert.True(t, due.Equal(time.Date(2025, time.March, 3, 3, 0, 0, 0, eastern)))

	assert.Equal(t, 0, s.Tick(start.Add(time.Hour)))
	assert.Equal(t, 1, s.Tick(start.Add(2*time.Hour)))
	assert.Equal(t, 1, runs)

	// Rescheduled for the next day, so a second tick the same night is a no-op
	assert.Equal(t, 0, s.Tick(start.Add(2*time.Hour+time.Minute)))
	due, _ = s.NextRun("daily")
	assert.True(t, due.Equal(time.Date(2025, time.March, 4, 3, 0, 0, 0, eastern)))

	_, ok = s.NextRun("missing")
	assert.False(t, ok)
}

func TestSchedulerLoop(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, discardLogger())

	var runs atomic.Int32
	s.Add("always", func(now time.Time) time.Time { return now }, func() { runs.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()
}
