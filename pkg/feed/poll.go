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

// Package feed runs periodic probes and writes their results into an
// entity's attribute store.
package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/carverauto/nodewarden/pkg/sensor"
)

const (
	// DefaultPeriod applies to polls that do not set their own period.
	DefaultPeriod = 500 * time.Millisecond
	// MinPeriod is the scheduler tick granularity.
	MinPeriod = 10 * time.Millisecond
	// DefaultTimeout bounds each individual probe.
	DefaultTimeout = 5 * time.Second
	// StopGrace is how long Stop waits for in-flight probes before abandoning them.
	StopGrace = 2 * time.Second
)

// Response is the raw result of an HTTP probe.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Successful reports whether the response carries a 2xx status.
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Poll describes one probe bound to exactly one sensor. Build polls with
// HTTPPoll or FunctionPoll.
type Poll struct {
	key       sensor.AttributeKey
	path      string
	period    time.Duration
	anyStatus bool
	onFailure func() any

	extract func(*Response) (any, error)
	call    func(context.Context) (any, error)
}

// Option customises a Poll.
type Option func(*Poll)

// WithPeriod overrides the feed default period for one poll.
func WithPeriod(d time.Duration) Option {
	return func(p *Poll) {
		p.period = d
	}
}

// WithPath sets the probe endpoint, either relative to the feed base URI or
// absolute.
func WithPath(path string) Option {
	return func(p *Poll) {
		p.path = path
	}
}

// WithAnyStatus hands non-2xx responses to the extractor instead of treating
// them as failures.
func WithAnyStatus() Option {
	return func(p *Poll) {
		p.anyStatus = true
	}
}

// HTTPPoll declares an HTTP probe. onSuccess maps the response to the
// sensor value; onFailure supplies the value written when the probe or the
// extraction fails.
func HTTPPoll[T any](s sensor.Sensor[T], onSuccess func(*Response) (T, error), onFailure T, opts ...Option) Poll {
	p := Poll{
		key:       s.Key(),
		onFailure: func() any { return onFailure },
		extract: func(r *Response) (any, error) {
			v, err := onSuccess(r)
			if err != nil {
				return nil, err
			}

			return v, nil
		},
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// FunctionPoll declares a probe that calls fn on every tick.
func FunctionPoll[T any](s sensor.Sensor[T], fn func(context.Context) (T, error), onFailure T, opts ...Option) Poll {
	p := Poll{
		key:       s.Key(),
		onFailure: func() any { return onFailure },
		call: func(ctx context.Context) (any, error) {
			v, err := fn(ctx)
			if err != nil {
				return nil, err
			}

			return v, nil
		},
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// Sensor returns the key of the sensor this poll writes.
func (p Poll) Sensor() sensor.AttributeKey {
	return p.key
}

// Period returns the poll's own period, or zero when it uses the feed default.
func (p Poll) Period() time.Duration {
	return p.period
}

// Path returns the configured endpoint path.
func (p Poll) Path() string {
	return p.path
}

func effectivePeriod(own, def time.Duration) time.Duration {
	if own <= 0 {
		own = def
	}

	if own <= 0 {
		own = DefaultPeriod
	}

	if own < MinPeriod {
		own = MinPeriod
	}

	return own
}
