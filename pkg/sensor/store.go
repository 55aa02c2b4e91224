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

package sensor

import (
	"sync"
	"time"
)

// Change is delivered to listeners after every Set.
type Change struct {
	Key      AttributeKey
	Value    any
	Previous any
	// HadPrevious is false on the first write of a sensor.
	HadPrevious bool
	Time        time.Time
}

// Listener observes store writes. Listeners run on the writing goroutine and
// must not block.
type Listener func(Change)

// Store is the per-entity attribute store. Writes are serialised and last
// write wins; reads see the latest completed write.
type Store struct {
	mu        sync.RWMutex
	values    map[AttributeKey]any
	listeners map[uint64]Listener
	nextID    uint64
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values:    make(map[AttributeKey]any),
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
}

// Set overwrites the value for key unconditionally.
// Listeners are invoked after the lock is released, so a listener may itself
// write to the store.
func (s *Store) Set(key AttributeKey, value any) {
	s.mu.Lock()
	prev, had := s.values[key]
	s.values[key] = value
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	if len(listeners) == 0 {
		return
	}

	change := Change{Key: key, Value: value, Previous: prev, HadPrevious: had, Time: s.now()}
	for _, l := range listeners {
		l(change)
	}
}

// Get returns the last value set for key; ok is false while the key is unset.
func (s *Store) Get(key AttributeKey) (value any, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok = s.values[key]

	return value, ok
}

// Clear returns key to the unset state without notifying listeners.
func (s *Store) Clear(key AttributeKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
}

// Snapshot copies every set value.
func (s *Store) Snapshot() map[AttributeKey]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[AttributeKey]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}

	return out
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotListenersLocked() []Listener {
	if len(s.listeners) == 0 {
		return nil
	}

	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}

	return out
}

// Set writes a typed sensor value.
func Set[T any](s *Store, sensor Sensor[T], value T) {
	s.Set(sensor.Key(), value)
}

// Get reads a typed sensor value. ok is false when the sensor is unset or
// holds a value of another type.
func Get[T any](s *Store, sensor Sensor[T]) (value T, ok bool) {
	raw, found := s.Get(sensor.Key())
	if !found {
		return value, false
	}

	return sensor.Coerce(raw)
}

// GetOrDefault reads a typed sensor value, returning def when unset.
func GetOrDefault[T any](s *Store, sensor Sensor[T], def T) T {
	if v, ok := Get(s, sensor); ok {
		return v
	}

	return def
}
