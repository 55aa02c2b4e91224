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
	"fmt"
	"time"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

// FunctionFeedConfig configures a FunctionFeed.
type FunctionFeedConfig struct {
	Name    string
	Period  time.Duration
	Timeout time.Duration
	Store   *sensor.Store
	Logger  logger.Logger
	Clock   Clock
	Gate    Gate
}

// FunctionFeed periodically calls Go functions and writes their results.
type FunctionFeed struct {
	*scheduler
}

// NewFunctionFeed builds a feed for the given function polls.
func NewFunctionFeed(cfg FunctionFeedConfig, polls ...Poll) (*FunctionFeed, error) {
	if cfg.Store == nil {
		return nil, ErrNoStore
	}

	tasks := make([]task, 0, len(polls))

	for _, p := range polls {
		if p.call == nil {
			return nil, fmt.Errorf("%w: %s is not a function poll", ErrPollKind, p.key)
		}

		tasks = append(tasks, task{
			key:       p.key,
			period:    effectivePeriod(p.period, cfg.Period),
			probe:     p.call,
			onFailure: p.onFailure,
		})
	}

	name := cfg.Name
	if name == "" {
		name = "function"
	}

	return &FunctionFeed{
		scheduler: newScheduler(name, tasks, cfg.Store, cfg.Logger, cfg.Clock, cfg.Gate, cfg.Timeout),
	}, nil
}
