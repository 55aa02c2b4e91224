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

import "errors"

var (
	// ErrFeedRunning is returned by Start on a feed that is already running.
	ErrFeedRunning = errors.New("feed already running")
	// ErrNoStore is returned when a feed is built without an attribute store.
	ErrNoStore = errors.New("feed requires an attribute store")
	// ErrNoBaseURI is returned when an HTTP feed has no base URI.
	ErrNoBaseURI = errors.New("http feed requires a base URI")
	// ErrPollKind is returned when a poll is handed to a feed of the wrong kind.
	ErrPollKind = errors.New("poll is not supported by this feed")
	// ErrFieldMissing is returned when a JSON field is absent from a response.
	ErrFieldMissing = errors.New("field missing from response")
	// ErrUnexpectedStatus is returned for non-2xx HTTP responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	errProbePanic = errors.New("probe panicked")
)
