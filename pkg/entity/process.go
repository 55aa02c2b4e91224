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

// Package entity implements the lifecycle shared by managed software
// processes: configuration validation, driver start and stop, sensor
// connection and the service-up liveness check.
package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/nodewarden/pkg/feed"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

// DefaultServiceUpPeriod is the liveness check cadence.
const DefaultServiceUpPeriod = 5 * time.Second

//nolint:gochecknoglobals // sensors are declared once per entity type
var (
	// ServiceUp reports whether the driver sees the process alive.
	ServiceUp = sensor.New[bool]("service.isUp", "Whether the service process is running")
	// ServiceState mirrors the lifecycle state.
	ServiceState = sensor.New[string]("service.state", "Lifecycle state of the entity")
)

// ProcessConfig configures a Process.
type ProcessConfig struct {
	ID     string
	Type   string
	Driver ProcessDriver
	Hooks  Hooks
	Store  *sensor.Store
	Logger logger.Logger
	// ServiceUpPeriod is the liveness check cadence.
	ServiceUpPeriod time.Duration
	// Gate suspends the liveness check while this instance is standby.
	Gate  feed.Gate
	Clock feed.Clock
}

// Process drives a managed software process through its lifecycle.
// Lifecycle operations are serialised; State and RequireRunning may be called
// from any goroutine.
type Process struct {
	id         string
	entityType string
	driver     ProcessDriver
	hooks      Hooks
	store      *sensor.Store
	logger     logger.Logger
	tracer     trace.Tracer

	serviceUpPeriod time.Duration
	gate            feed.Gate
	clock           feed.Clock

	lifecycleMu sync.Mutex
	serviceUp   feed.Feed

	stateMu   sync.RWMutex
	state     State
	listeners []TransitionListener
}

// NewProcess builds a process in StateCreated.
func NewProcess(cfg ProcessConfig) (*Process, error) {
	if cfg.Driver == nil {
		return nil, ErrNoDriver
	}

	store := cfg.Store
	if store == nil {
		store = sensor.NewStore()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	period := cfg.ServiceUpPeriod
	if period <= 0 {
		period = DefaultServiceUpPeriod
	}

	p := &Process{
		id:              cfg.ID,
		entityType:      cfg.Type,
		driver:          cfg.Driver,
		hooks:           cfg.Hooks,
		store:           store,
		logger:          logger.Wrap(log.With().Str("entity_id", cfg.ID).Str("entity_type", cfg.Type).Logger()),
		tracer:          otel.Tracer(instrumentationName),
		serviceUpPeriod: period,
		gate:            cfg.Gate,
		clock:           cfg.Clock,
		state:           StateCreated,
	}

	sensor.Set(store, ServiceState, StateCreated.String())

	return p, nil
}

// ID returns the entity identifier.
func (p *Process) ID() string { return p.id }

// Type returns the entity type name.
func (p *Process) Type() string { return p.entityType }

// Store returns the entity attribute store.
func (p *Process) Store() *sensor.Store { return p.store }

// Logger returns the entity-scoped logger.
func (p *Process) Logger() logger.Logger { return p.logger }

// State returns the current lifecycle state.
func (p *Process) State() State {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()

	return p.state
}

// RequireRunning returns ErrInvalidState unless the entity is RUNNING.
func (p *Process) RequireRunning() error {
	if s := p.State(); s != StateRunning {
		return fmt.Errorf("%w: %s is %s, not %s", ErrInvalidState, p.id, s, StateRunning)
	}

	return nil
}

// AddTransitionListener registers l for every subsequent transition.
func (p *Process) AddTransitionListener(l TransitionListener) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	p.listeners = append(p.listeners, l)
}

// Init validates static configuration and moves CREATED to INITIALIZED. On a
// validation error the entity stays CREATED and the error wraps
// ErrMissingConfig.
func (p *Process) Init() error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if s := p.State(); s != StateCreated {
		return fmt.Errorf("%w: cannot initialize from %s", ErrInvalidState, s)
	}

	if p.hooks != nil {
		if err := p.hooks.ValidateConfig(); err != nil {
			p.logger.Error().Err(err).Msg("Configuration validation failed")

			if errors.Is(err, ErrMissingConfig) {
				return err
			}

			return fmt.Errorf("%w: %w", ErrMissingConfig, err)
		}
	}

	p.transition(context.Background(), StateInitialized, nil)

	return nil
}

// Start launches the process, connects sensors and starts the liveness
// check. Driver or connection failures move the entity to FAILED.
func (p *Process) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	ctx, span := p.tracer.Start(ctx, "entity.Start", trace.WithAttributes(
		attribute.String("entity.id", p.id),
		attribute.String("entity.type", p.entityType),
	))
	defer span.End()

	if s := p.State(); s != StateInitialized && s != StateStopped {
		err := fmt.Errorf("%w: cannot start from %s", ErrInvalidState, s)
		span.RecordError(err)

		return err
	}

	p.transition(ctx, StateStarting, nil)

	if err := p.driver.Start(ctx); err != nil {
		return p.fail(ctx, span, "driver start", err)
	}

	if p.hooks != nil {
		if err := p.hooks.ConnectSensors(ctx); err != nil {
			p.disconnect(ctx)

			return p.fail(ctx, span, "connect sensors", err)
		}
	}

	if err := p.startServiceUp(ctx); err != nil {
		p.disconnect(ctx)

		return p.fail(ctx, span, "service-up check", err)
	}

	p.transition(ctx, StateRunning, nil)
	span.SetStatus(codes.Ok, "running")

	return nil
}

// Stop disconnects sensors, then stops the process. Calling Stop on an
// entity that is not running is a no-op, except for FAILED which reports
// ErrInvalidState.
func (p *Process) Stop(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	ctx, span := p.tracer.Start(ctx, "entity.Stop", trace.WithAttributes(
		attribute.String("entity.id", p.id),
		attribute.String("entity.type", p.entityType),
	))
	defer span.End()

	switch s := p.State(); s {
	case StateRunning:
	case StateFailed:
		err := fmt.Errorf("%w: cannot stop from %s", ErrInvalidState, s)
		span.RecordError(err)

		return err
	default:
		return nil
	}

	p.transition(ctx, StateStopping, nil)
	p.disconnect(ctx)

	if err := p.driver.Stop(ctx); err != nil {
		return p.fail(ctx, span, "driver stop", err)
	}

	p.transition(ctx, StateStopped, nil)
	span.SetStatus(codes.Ok, "stopped")

	return nil
}

// Restart stops and starts the entity. A fresh set of feeds is created for
// the new activation.
func (p *Process) Restart(ctx context.Context) error {
	if err := p.Stop(ctx); err != nil {
		return err
	}

	return p.Start(ctx)
}

func (p *Process) startServiceUp(ctx context.Context) error {
	driver := p.driver

	up, err := feed.NewFunctionFeed(feed.FunctionFeedConfig{
		Name:   p.id + ".service-up",
		Period: p.serviceUpPeriod,
		Store:  p.store,
		Logger: p.logger,
		Clock:  p.clock,
		Gate:   p.gate,
	}, feed.FunctionPoll(ServiceUp, driver.IsRunning, false))
	if err != nil {
		return err
	}

	if err := up.Start(context.WithoutCancel(ctx)); err != nil {
		return err
	}

	p.serviceUp = up

	return nil
}

// disconnect stops the liveness check and the entity feeds. Errors are
// logged; teardown always continues.
func (p *Process) disconnect(ctx context.Context) {
	if p.serviceUp != nil {
		if err := p.serviceUp.Stop(ctx); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to stop service-up check")
		}

		p.serviceUp = nil
	}

	if p.hooks != nil {
		if err := p.hooks.DisconnectSensors(ctx); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to disconnect sensors")
		}
	}

	sensor.Set(p.store, ServiceUp, false)
}

func (p *Process) fail(ctx context.Context, span trace.Span, step string, cause error) error {
	err := fmt.Errorf("%w: %s: %w", ErrEntityFailed, step, cause)

	span.RecordError(err)
	span.SetStatus(codes.Error, step+" failed")

	p.logger.Error().Err(cause).Str("step", step).Msg("Entity failed")
	p.transition(ctx, StateFailed, err)

	return err
}

func (p *Process) transition(ctx context.Context, to State, cause error) {
	p.stateMu.Lock()
	from := p.state
	p.state = to
	listeners := append([]TransitionListener(nil), p.listeners...)
	p.stateMu.Unlock()

	sensor.Set(p.store, ServiceState, to.String())
	recordTransition(ctx, p.entityType, to)

	p.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("Lifecycle transition")

	t := Transition{
		EntityID:   p.id,
		EntityType: p.entityType,
		From:       from,
		To:         to,
		Time:       time.Now(),
		Err:        cause,
	}

	for _, l := range listeners {
		l(t)
	}
}
