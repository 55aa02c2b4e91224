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

package riak

import "errors"

var (
	// ErrMalformedVersion is returned when a version is too short to hold a
	// major.minor prefix.
	ErrMalformedVersion = errors.New("malformed version")
	// ErrCommandFailed wraps a failed riak or riak-admin invocation.
	ErrCommandFailed = errors.New("riak command failed")
	// ErrNoDriver is returned when a node is built without a driver.
	ErrNoDriver = errors.New("riak node requires a driver")
	// ErrProvisioning is returned when a node's provisioning advice cannot be
	// computed from its configuration.
	ErrProvisioning = errors.New("invalid provisioning configuration")

	errNoMapping = errors.New("no address mapping")
)
