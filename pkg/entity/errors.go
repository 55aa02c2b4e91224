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

import "errors"

var (
	// ErrMissingConfig marks required static configuration that is absent.
	ErrMissingConfig = errors.New("missing required configuration")
	// ErrInvalidState is returned for operations not valid in the current state.
	ErrInvalidState = errors.New("invalid entity state")
	// ErrEntityFailed wraps driver failures on the start and stop paths.
	ErrEntityFailed = errors.New("entity failed")
	// ErrNoDriver is returned when a process is built without a driver.
	ErrNoDriver = errors.New("entity requires a driver")
)
