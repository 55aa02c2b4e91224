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

// Package sensor holds the typed observable attributes of a managed entity
// and the store that keeps their latest values.
package sensor

import (
	"fmt"
)

// AttributeKey is the untyped identity of a sensor or config key.
type AttributeKey string

// Sensor is a named, typed observable attribute.
type Sensor[T any] struct {
	name        string
	description string
}

// New declares a sensor. Sensors are declared once, at package level, and
// identified by name.
func New[T any](name, description string) Sensor[T] {
	return Sensor[T]{name: name, description: description}
}

// Name returns the sensor name.
func (s Sensor[T]) Name() string { return s.name }

// Description returns the human-readable description.
func (s Sensor[T]) Description() string { return s.description }

// Key returns the untyped store key.
func (s Sensor[T]) Key() AttributeKey { return AttributeKey(s.name) }

func (s Sensor[T]) String() string { return s.name }

// TypeName reports the Go type carried by the sensor, e.g. "int64".
func (Sensor[T]) TypeName() string {
	var zero T

	return fmt.Sprintf("%T", zero)
}

// Coerce type-asserts v to the sensor's type.
func (Sensor[T]) Coerce(v any) (T, bool) {
	t, ok := v.(T)

	return t, ok
}

// ConfigKey is a named, typed input parameter with a default, resolved once
// when an entity initializes.
type ConfigKey[T any] struct {
	name         string
	description  string
	defaultValue T
	hasDefault   bool
}

// NewConfigKey declares a config key without a default; resolving it from a
// bag that lacks it reports it as absent.
func NewConfigKey[T any](name, description string) ConfigKey[T] {
	return ConfigKey[T]{name: name, description: description}
}

// NewConfigKeyWithDefault declares a config key with a default value.
func NewConfigKeyWithDefault[T any](name, description string, def T) ConfigKey[T] {
	return ConfigKey[T]{name: name, description: description, defaultValue: def, hasDefault: true}
}

// Name returns the config key name.
func (k ConfigKey[T]) Name() string { return k.name }

// Key returns the untyped bag key.
func (k ConfigKey[T]) Key() AttributeKey { return AttributeKey(k.name) }

// Default returns the declared default and whether one exists.
func (k ConfigKey[T]) Default() (T, bool) { return k.defaultValue, k.hasDefault }

// Bag is an immutable set of raw config values keyed by config key name.
type Bag map[AttributeKey]any

// Resolve returns the value of key in bag, falling back to the key default.
// A value of the wrong type is treated as absent.
func Resolve[T any](bag Bag, key ConfigKey[T]) (T, bool) {
	if raw, ok := bag[key.Key()]; ok {
		if v, ok := raw.(T); ok {
			return v, true
		}
	}

	return key.Default()
}

// IsExplicit reports whether key was supplied in bag rather than defaulted.
func IsExplicit[T any](bag Bag, key ConfigKey[T]) bool {
	raw, ok := bag[key.Key()]
	if !ok {
		return false
	}

	_, ok = raw.(T)

	return ok
}
