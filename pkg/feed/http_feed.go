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
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

const maxResponseBytes = 4 << 20

// HTTPFeedConfig configures an HTTPFeed.
type HTTPFeedConfig struct {
	// Name identifies the feed in logs and metrics. Defaults to the base URI.
	Name string
	// BaseURI is the address relative poll paths resolve against,
	// e.g. http://10.0.0.5:8098/stats.
	BaseURI string
	// Period applies to polls without their own period.
	Period time.Duration
	// Timeout bounds every probe.
	Timeout time.Duration
	Client  *http.Client
	Store   *sensor.Store
	Logger  logger.Logger
	Clock   Clock
	Gate    Gate
}

// HTTPFeed polls HTTP endpoints and writes the extracted values to a store.
// Store listeners must not stop the feed that is writing to them.
type HTTPFeed struct {
	*scheduler
	baseURI string
}

// NewHTTPFeed builds a feed for the given HTTP polls. The feed does not run
// until Start is called.
func NewHTTPFeed(cfg HTTPFeedConfig, polls ...Poll) (*HTTPFeed, error) {
	if cfg.Store == nil {
		return nil, ErrNoStore
	}

	if cfg.BaseURI == "" {
		return nil, ErrNoBaseURI
	}

	base, err := url.Parse(cfg.BaseURI)
	if err != nil {
		return nil, fmt.Errorf("invalid base URI %q: %w", cfg.BaseURI, err)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}

	tasks := make([]task, 0, len(polls))

	for _, p := range polls {
		if p.extract == nil {
			return nil, fmt.Errorf("%w: %s is not an HTTP poll", ErrPollKind, p.key)
		}

		target := base
		if p.path != "" {
			ref, err := url.Parse(p.path)
			if err != nil {
				return nil, fmt.Errorf("invalid path %q for %s: %w", p.path, p.key, err)
			}

			target = base.ResolveReference(ref)
		}

		tasks = append(tasks, task{
			key:       p.key,
			period:    effectivePeriod(p.period, cfg.Period),
			probe:     httpProbe(client, target.String(), p),
			onFailure: p.onFailure,
		})
	}

	name := cfg.Name
	if name == "" {
		name = cfg.BaseURI
	}

	return &HTTPFeed{
		scheduler: newScheduler(name, tasks, cfg.Store, cfg.Logger, cfg.Clock, cfg.Gate, cfg.Timeout),
		baseURI:   cfg.BaseURI,
	}, nil
}

// BaseURI returns the address the feed was built for.
func (f *HTTPFeed) BaseURI() string {
	return f.baseURI
}

func httpProbe(client *http.Client, target string, p Poll) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		r := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
		if !p.anyStatus && !r.Successful() {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}

		return p.extract(r)
	}
}
