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

// Package enricher derives sensors from other sensors of the same entity.
package enricher

import (
	"sync"
	"time"

	"github.com/carverauto/nodewarden/pkg/sensor"
)

// TimeWeightedDelta publishes the rate of change of a monotonically
// increasing counter, per unit of time. Negative readings are failure
// sentinels and are ignored; a counter that goes backwards resets the
// baseline without publishing.
type TimeWeightedDelta struct {
	store  *sensor.Store
	source sensor.Sensor[int64]
	target sensor.Sensor[float64]
	unit   time.Duration

	mu          sync.Mutex
	lastValue   int64
	lastTime    time.Time
	hasBaseline bool
	unsubscribe func()
}

// NewTimeWeightedDelta builds an enricher writing source's rate per unit to
// target. A non-positive unit means per second.
func NewTimeWeightedDelta(store *sensor.Store, source sensor.Sensor[int64], target sensor.Sensor[float64], unit time.Duration) *TimeWeightedDelta {
	if unit <= 0 {
		unit = time.Second
	}

	return &TimeWeightedDelta{
		store:  store,
		source: source,
		target: target,
		unit:   unit,
	}
}

// Start subscribes to the store. Starting twice is a no-op.
func (e *TimeWeightedDelta) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unsubscribe != nil {
		return
	}

	e.hasBaseline = false
	e.unsubscribe = e.store.Subscribe(e.onChange)
}

// Stop unsubscribes. It is safe to call repeatedly.
func (e *TimeWeightedDelta) Stop() {
	e.mu.Lock()
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (e *TimeWeightedDelta) onChange(c sensor.Change) {
	if c.Key != e.source.Key() {
		return
	}

	v, ok := e.source.Coerce(c.Value)
	if !ok || v < 0 {
		return
	}

	rate, publish := e.observe(v, c.Time)
	if publish {
		sensor.Set(e.store, e.target, rate)
	}
}

func (e *TimeWeightedDelta) observe(v int64, at time.Time) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	defer func() {
		e.lastValue = v
		e.lastTime = at
		e.hasBaseline = true
	}()

	if !e.hasBaseline || v < e.lastValue {
		return 0, false
	}

	elapsed := at.Sub(e.lastTime)
	if elapsed <= 0 {
		return 0, false
	}

	return float64(v-e.lastValue) * float64(e.unit) / float64(elapsed), true
}
