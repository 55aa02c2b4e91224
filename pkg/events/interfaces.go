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

// Package events publishes managed-entity lifecycle transitions and sensor
// changes as CloudEvents on NATS JetStream.
package events

//go:generate mockgen -destination=mock_events.go -package=events github.com/carverauto/nodewarden/pkg/events Publisher

import (
	"context"

	"github.com/carverauto/nodewarden/pkg/models"
)

// Publisher sends entity events to the message bus.
type Publisher interface {
	PublishLifecycle(ctx context.Context, data *models.LifecycleEventData) error
	PublishSensor(ctx context.Context, data *models.SensorEventData) error
}
