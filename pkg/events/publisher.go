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

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/models"
	"github.com/carverauto/nodewarden/pkg/natsutil"
)

const (
	// DefaultStream holds every entity event.
	DefaultStream = "NODEWARDEN_EVENTS"

	subjectPrefix = "nodewarden.entity"
	eventSource   = "nodewarden"

	lifecycleType = "com.carverauto.nodewarden.entity.lifecycle"
	sensorType    = "com.carverauto.nodewarden.entity.sensor"
)

// LifecycleSubject is the subject lifecycle events for entityID are sent on.
func LifecycleSubject(entityID string) string {
	return subjectPrefix + "." + subjectToken(entityID) + ".lifecycle"
}

// SensorSubject is the subject sensor events for entityID are sent on.
func SensorSubject(entityID string) string {
	return subjectPrefix + "." + subjectToken(entityID) + ".sensor"
}

// subjectToken makes an entity ID usable as a single subject token.
func subjectToken(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		default:
			return r
		}
	}, id)
}

// PublisherConfig configures a NATSPublisher.
type PublisherConfig struct {
	Stream string
	Domain string
	Source string
}

// NATSPublisher publishes CloudEvents to a JetStream stream.
type NATSPublisher struct {
	js     jetstream.JetStream
	source string
	logger logger.Logger
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher ensures the event stream exists on nc and returns a
// publisher writing to it.
func NewNATSPublisher(ctx context.Context, nc *nats.Conn, cfg PublisherConfig, log logger.Logger) (*NATSPublisher, error) {
	var (
		js  jetstream.JetStream
		err error
	)

	if cfg.Domain != "" {
		js, err = jetstream.NewWithDomain(nc, cfg.Domain)
	} else {
		js, err = jetstream.New(nc)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream := cfg.Stream
	if stream == "" {
		stream = DefaultStream
	}

	if _, err := natsutil.EnsureStream(ctx, js, stream,
		subjectPrefix+".*.lifecycle", subjectPrefix+".*.sensor"); err != nil {
		return nil, err
	}

	source := cfg.Source
	if source == "" {
		source = eventSource
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &NATSPublisher{js: js, source: source, logger: log}, nil
}

// PublishLifecycle publishes one lifecycle transition.
func (p *NATSPublisher) PublishLifecycle(ctx context.Context, data *models.LifecycleEventData) error {
	return p.publish(ctx, LifecycleSubject(data.EntityID), lifecycleType, data.Timestamp, data)
}

// PublishSensor publishes one sensor change.
func (p *NATSPublisher) PublishSensor(ctx context.Context, data *models.SensorEventData) error {
	return p.publish(ctx, SensorSubject(data.EntityID), sensorType, data.Timestamp, data)
}

func (p *NATSPublisher) publish(ctx context.Context, subject, eventType string, ts time.Time, data interface{}) error {
	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          p.source,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &ts,
		Data:            data,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	ack, err := p.js.Publish(ctx, subject, body)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", subject).
		Uint64("seq", ack.Sequence).
		Msg("Published event")

	return nil
}
