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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/carverauto/nodewarden/pkg/feed"

	metricProbes        = "nodewarden.feed.probes"
	metricProbeDuration = "nodewarden.feed.probe.duration"

	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeSkipped   = "skipped"
	outcomeDiscarded = "discarded"
)

var (
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	meterOnce sync.Once
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	probeCounter metric.Int64Counter
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	probeHistogram metric.Float64Histogram
)

func initMeter() {
	meter := otel.Meter(meterName)

	counter, err := meter.Int64Counter(
		metricProbes,
		metric.WithDescription("Feed probes by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	probeCounter = counter

	hist, err := meter.Float64Histogram(
		metricProbeDuration,
		metric.WithDescription("Duration of individual feed probes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}
	probeHistogram = hist
}

func recordProbe(ctx context.Context, feed, sensorName, outcome string, duration time.Duration) {
	meterOnce.Do(initMeter)

	attrs := metric.WithAttributes(
		attribute.String("feed", feed),
		attribute.String("sensor", sensorName),
		attribute.String("outcome", outcome),
	)

	if probeCounter != nil {
		probeCounter.Add(ctx, 1, attrs)
	}

	if probeHistogram != nil && duration > 0 {
		probeHistogram.Record(ctx, duration.Seconds(), attrs)
	}
}
