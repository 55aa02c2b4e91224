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

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/carverauto/nodewarden/pkg/entity"
	metricTransitions   = "nodewarden.entity.transitions"
)

var (
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	meterOnce sync.Once
	//nolint:gochecknoglobals // metrics instruments are shared across the process intentionally
	transitionCounter metric.Int64Counter
)

func initMeter() {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		metricTransitions,
		metric.WithDescription("Entity lifecycle transitions by target state"),
	)
	if err != nil {
		otel.Handle(err)
	}
	transitionCounter = counter
}

func recordTransition(ctx context.Context, entityType string, to State) {
	meterOnce.Do(initMeter)

	if transitionCounter == nil {
		return
	}

	transitionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity_type", entityType),
		attribute.String("state", to.String()),
	))
}
