package refresh

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const DefaultPollInterval = 60 * time.Second

type task struct {
	name string
	next func(time.Time) time.Time
	run  func()
	due  time.Time
}

// Scheduler is a cooperative due-time queue checked once per tick.
// Task functions must not block; long work belongs behind Orchestrator.Trigger.
type Scheduler struct {
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	tasks []*task

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Add registers a recurring task first due at next(now)
func (s *Scheduler) Add(name string, next func(time.Time) time.Time, run func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &task{name: name, next: next, run: run, due: next(s.now())}
	s.tasks = append(s.tasks, t)
	s.logger.Info("task scheduled", "task", name, "next_run", t.due)
}

// NextRun returns when the named task is due next
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.name == name {
			return t.due, true
		}
	}
	return time.Time{}, false
}

// Tick runs every task due at now and reschedules it. It returns how many tasks ran.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	var due []*task
	for _, t := range s.tasks {
		if !now.Before(t.due) {
			due = append(due, t)
			t.due = t.next(now)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		s.logger.Info("running scheduled task", "task", t.name)
		t.run()
	}
	return len(due)
}

// Start begins polling the queue in the background
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop signals the loop to exit and waits for it
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}

// DailyAt returns a schedule firing every day at hour:minute in loc
func DailyAt(hour, minute int, loc *time.Location) func(time.Time) time.Time {
	return func(now time.Time) time.Time {
		local := now.In(loc)
		next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
		if !next.After(local) {
			next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
		}
		return next
	}
}

// ParseClock parses a 24-hour "HH:MM" time of day
func ParseClock(value string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, errors.Errorf("invalid time of day %q, expected HH:MM", value)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errors.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errors.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
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
