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

package entity

import "time"

// State is a lifecycle state of a managed entity.
type State int

const (
	StateCreated State = iota
	StateInitialized
	StateStarting
	StateRunning
	StateStopping
	StateStopped
	// StateFailed is absorbing.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateInitialized:
		return "INITIALIZED"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Transition describes one lifecycle state change.
type Transition struct {
	EntityID   string
	EntityType string
	From       State
	To         State
	Time       time.Time
	// Err is the cause when To is StateFailed.
	Err error
}

// TransitionListener observes lifecycle transitions. Listeners run
// synchronously on the goroutine driving the lifecycle and must not block.
type TransitionListener func(Transition)
