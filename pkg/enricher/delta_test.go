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

package enricher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/nodewarden/pkg/sensor"
)

var (
	total = sensor.New[int64]("test.total", "")
	rate  = sensor.New[float64]("test.rate", "")
)

func TestTimeWeightedDelta(t *testing.T) {
	store := sensor.NewStore()
	e := NewTimeWeightedDelta(store, total, rate, 0)
	base := time.Unix(1000, 0)

	e.Start()
	e.Start()

	e.onChange(sensor.Change{Key: total.Key(), Value: int64(100), Time: base})

	_, ok := sensor.Get(store, rate)
	assert.False(t, ok, "first reading only sets the baseline")

	e.onChange(sensor.Change{Key: total.Key(), Value: int64(150), Time: base.Add(500 * time.Millisecond)})

	v, ok := sensor.Get(store, rate)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 0.0001)

	// Failure sentinel is ignored and does not move the baseline.
	e.onChange(sensor.Change{Key: total.Key(), Value: int64(-1), Time: base.Add(time.Second)})
	e.onChange(sensor.Change{Key: total.Key(), Value: int64(160), Time: base.Add(1500 * time.Millisecond)})
	assert.InDelta(t, 10.0, sensor.GetOrDefault(store, rate, 0), 0.0001)

	// Counter reset re-baselines.
	e.onChange(sensor.Change{Key: total.Key(), Value: int64(5), Time: base.Add(2 * time.Second)})
	assert.InDelta(t, 10.0, sensor.GetOrDefault(store, rate, 0), 0.0001)

	e.Stop()
	e.Stop()
}

func TestTimeWeightedDelta_ThroughStore(t *testing.T) {
	store := sensor.NewStore()
	e := NewTimeWeightedDelta(store, total, rate, time.Minute)

	e.Start()
	defer e.Stop()

	sensor.Set(store, total, 10)
	time.Sleep(20 * time.Millisecond)
	sensor.Set(store, total, 20)

	v, ok := sensor.Get(store, rate)
	require.True(t, ok)
	assert.Positive(t, v)

	e.Stop()
	sensor.Set(store, total, 1000)
	assert.InDelta(t, v, sensor.GetOrDefault(store, rate, 0), 0.0001, "no updates after Stop")
}
