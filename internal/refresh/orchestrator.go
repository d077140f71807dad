package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrAlreadyRunning is returned by RunNow when another refresh holds the token
var ErrAlreadyRunning = errors.New("refresh: already running")

// Runner is one complete refresh cycle
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

type state int

const (
	idle state = iota
	running
)

// Orchestrator owns the idle/running token and guarantees at most one refresh in flight.
// Losing callers return immediately; nothing is queued.
type Orchestrator struct {
	runner Runner
	logger *slog.Logger

	mu      sync.Mutex
	state   state
	lastRun time.Time
	lastErr error

	wg sync.WaitGroup
}

func NewOrchestrator(runner Runner, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{runner: runner, logger: logger}
}

// TryStart moves the token from idle to running, reporting whether this caller won it
func (o *Orchestrator) TryStart() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == running {
		return false
	}
	o.state = running
	return true
}

func (o *Orchestrator) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == running
}

// LastResult returns when the last run finished and its error
func (o *Orchestrator) LastResult() (time.Time, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastRun, o.lastErr
}

// Trigger starts a refresh in the background unless one is already running.
// It never blocks and reports whether a run was started.
func (o *Orchestrator) Trigger() bool {
	if !o.TryStart() {
		o.logger.Debug("refresh already running, trigger dropped")
		return false
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		// In-flight refreshes are not cancelled; they finish or fail on their own
		o.run(context.Background())
	}()
	return true
}

// RunNow runs a refresh on the calling goroutine
func (o *Orchestrator) RunNow(ctx context.Context) error {
	if !o.TryStart() {
		return ErrAlreadyRunning
	}
	return o.run(ctx)
}

// Wait blocks until background runs started by Trigger have finished
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("refresh panicked: %v", r)
		}
		o.finish(err)
		if err != nil {
			o.logger.Error("refresh failed", "duration", time.Since(start).Round(time.Millisecond), "error", err)
			return
		}
		o.logger.Info("refresh finished", "duration", time.Since(start).Round(time.Millisecond))
	}()

	o.logger.Info("refresh started")
	return o.runner.Run(ctx)
}

func (o *Orchestrator) finish(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = idle
	o.lastRun = time.Now()
	o.lastErr = err
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
