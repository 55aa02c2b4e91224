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

//go:generate mockgen -destination=mock_feed.go -package=feed github.com/carverauto/nodewarden/pkg/feed Clock,Gate,Ticker

import (
	"context"
	"time"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Gate decides whether probes may run. A feed skips every tick while its
// gate reports the management instance as inactive.
type Gate interface {
	IsActive() bool
}

// Feed is a running group of probes bound to one entity.
type Feed interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}
