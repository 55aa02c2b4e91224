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

package events

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/nodewarden/pkg/entity"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/models"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

const (
	// DefaultBuffer is the number of events held while the publisher is slow.
	DefaultBuffer = 1024
	// DefaultPublishTimeout bounds a single publish.
	DefaultPublishTimeout = 5 * time.Second

	dropLogEvery = 100
)

// ForwarderConfig configures a Forwarder.
type ForwarderConfig struct {
	EntityID       string
	Publisher      Publisher
	Logger         logger.Logger
	Buffer         int
	PublishTimeout time.Duration
}

// Forwarder moves store changes and lifecycle transitions onto a Publisher
// from its own goroutine. Callers never block: when the buffer is full the
// event is dropped and counted.
type Forwarder struct {
	entityID string
	pub      Publisher
	logger   logger.Logger
	timeout  time.Duration

	mu      sync.RWMutex
	queue   chan func(context.Context) error
	closed  bool
	started bool
	done    chan struct{}

	dropped atomic.Uint64
}

// NewForwarder returns a forwarder; call Start before events can flow.
func NewForwarder(cfg ForwarderConfig) *Forwarder {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Forwarder{
		entityID: cfg.EntityID,
		pub:      cfg.Publisher,
		logger:   log,
		timeout:  timeout,
		queue:    make(chan func(context.Context) error, buffer),
		done:     make(chan struct{}),
	}
}

// OnChange is a sensor.Listener. Writes that do not change the value are not
// forwarded.
func (f *Forwarder) OnChange(c sensor.Change) {
	if c.HadPrevious && reflect.DeepEqual(c.Previous, c.Value) {
		return
	}

	data := &models.SensorEventData{
		EntityID:  f.entityID,
		Sensor:    string(c.Key),
		Value:     c.Value,
		Timestamp: c.Time,
	}

	if c.HadPrevious {
		data.Previous = c.Previous
	}

	f.enqueue(func(ctx context.Context) error { return f.pub.PublishSensor(ctx, data) })
}

// OnTransition is an entity.TransitionListener.
func (f *Forwarder) OnTransition(tr entity.Transition) {
	data := &models.LifecycleEventData{
		EntityID:      tr.EntityID,
		EntityType:    tr.EntityType,
		PreviousState: tr.From.String(),
		CurrentState:  tr.To.String(),
		Timestamp:     tr.Time,
	}

	if tr.Err != nil {
		data.Error = tr.Err.Error()
	}

	f.enqueue(func(ctx context.Context) error { return f.pub.PublishLifecycle(ctx, data) })
}

func (f *Forwarder) enqueue(send func(context.Context) error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	select {
	case f.queue <- send:
	default:
		if n := f.dropped.Add(1); n%dropLogEvery == 1 {
			f.logger.Warn().Uint64("dropped", n).Str("entity_id", f.entityID).Msg("Event buffer full, dropping events")
		}
	}
}

// Dropped is the number of events discarded because the buffer was full.
func (f *Forwarder) Dropped() uint64 { return f.dropped.Load() }

// Start begins publishing queued events.
func (f *Forwarder) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started || f.closed {
		return
	}

	f.started = true

	go f.run(context.WithoutCancel(ctx))
}

func (f *Forwarder) run(ctx context.Context) {
	defer close(f.done)

	for send := range f.queue {
		pubCtx, cancel := context.WithTimeout(ctx, f.timeout)
		if err := send(pubCtx); err != nil {
			f.logger.Warn().Err(err).Str("entity_id", f.entityID).Msg("Failed to publish event")
		}
		cancel()
	}
}

// Stop refuses new events and waits, bounded by ctx, for the queued ones to
// be published.
func (f *Forwarder) Stop(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}

	f.closed = true
	close(f.queue)
	started := f.started
	f.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
