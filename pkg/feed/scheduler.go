/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

// task is one scheduled probe.
type task struct {
	key       sensor.AttributeKey
	period    time.Duration
	probe     func(ctx context.Context) (any, error)
	onFailure func() any
}

// scheduler runs every task on its own goroutine and cadence. Writes are
// accepted only while the generation that issued the probe is still the
// running one, so probes that resolve after Stop are discarded.
type scheduler struct {
	name    string
	tasks   []task
	store   *sensor.Store
	logger  logger.Logger
	clock   Clock
	gate    Gate
	timeout time.Duration
	grace   time.Duration

	mu         sync.RWMutex
	running    bool
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

func newScheduler(name string, tasks []task, store *sensor.Store, log logger.Logger, clock Clock, gate Gate, timeout time.Duration) *scheduler {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if clock == nil {
		clock = realClock{}
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &scheduler{
		name:    name,
		tasks:   tasks,
		store:   store,
		logger:  log,
		clock:   clock,
		gate:    gate,
		timeout: timeout,
		grace:   StopGrace,
	}
}

// Start launches one goroutine per task. The first probe of every task runs
// immediately. A stopped feed may be started again; probes of the earlier
// run can no longer write.
func (s *scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrFeedRunning
	}

	runCtx, cancel := context.WithCancel(ctx)

	s.generation++
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	var wg sync.WaitGroup

	for _, t := range s.tasks {
		wg.Add(1)

		go func(t task, gen uint64) {
			defer wg.Done()

			s.loop(runCtx, t, gen)
		}(t, s.generation)
	}

	go func(done chan struct{}) {
		wg.Wait()
		close(done)
	}(s.done)

	s.logger.Info().
		Str("feed", s.name).
		Int("polls", len(s.tasks)).
		Uint64("generation", s.generation).
		Msg("Feed started")

	return nil
}

// Stop prevents new probes, cancels in-flight ones and waits for them for at
// most the grace period. It is safe to call repeatedly and before Start.
func (s *scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()

		return nil
	}

	s.running = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case <-done:
		s.logger.Info().Str("feed", s.name).Msg("Feed stopped")
	case <-timer.C:
		s.logger.Warn().Str("feed", s.name).Dur("grace", s.grace).Msg("Abandoning in-flight probes")
	case <-ctx.Done():
		s.logger.Warn().Str("feed", s.name).Err(ctx.Err()).Msg("Stop interrupted, abandoning in-flight probes")
	}

	return nil
}

// IsRunning reports whether the feed is between Start and Stop.
func (s *scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

func (s *scheduler) loop(ctx context.Context, t task, gen uint64) {
	ticker := s.clock.Ticker(t.period)
	defer ticker.Stop()

	s.tick(ctx, t, gen)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.tick(ctx, t, gen)
		}
	}
}

func (s *scheduler) tick(ctx context.Context, t task, gen uint64) {
	if ctx.Err() != nil {
		return
	}

	if s.gate != nil && !s.gate.IsActive() {
		recordProbe(ctx, s.name, string(t.key), outcomeSkipped, 0)

		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.clock.Now()
	value, err := safeProbe(probeCtx, t.probe)
	elapsed := s.clock.Now().Sub(start)

	outcome := outcomeSuccess

	if err != nil {
		outcome = outcomeFailure
		value = t.onFailure()

		s.logger.Debug().
			Str("feed", s.name).
			Str("sensor", string(t.key)).
			Err(err).
			Msg("Probe failed, writing failure value")
	}

	if !s.write(t.key, value, gen) {
		outcome = outcomeDiscarded
	}

	recordProbe(ctx, s.name, string(t.key), outcome, elapsed)
}

// write stores value if gen is still the running generation. Stop takes the
// write lock, so once it returns no further write can land.
func (s *scheduler) write(key sensor.AttributeKey, value any, gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running || s.generation != gen {
		return false
	}

	s.store.Set(key, value)

	return true
}

func safeProbe(ctx context.Context, probe func(context.Context) (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errProbePanic, r)
		}
	}()

	return probe(ctx)
}
