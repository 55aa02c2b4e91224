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

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"

	"github.com/carverauto/nodewarden/pkg/events"
	"github.com/carverauto/nodewarden/pkg/ha"
	"github.com/carverauto/nodewarden/pkg/history"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/natsutil"
	"github.com/carverauto/nodewarden/pkg/riak"
)

// warden runs one managed Riak node together with its HA gate, event
// forwarding and history recording.
type warden struct {
	cfg    *Config
	logger logger.Logger

	node      *riak.Node
	haSource  ha.StatusSource
	kvSource  *ha.KVSource
	forwarder *events.Forwarder
	sink      *history.Sink

	nc   *nats.Conn
	pool *pgxpool.Pool
}

type wardenDeps struct {
	driver riak.Driver
	// publisher overrides the NATS publisher, for tests.
	publisher events.Publisher
	historyDB history.BatchSender
}

func newWarden(ctx context.Context, cfg *Config, log logger.Logger, deps wardenDeps) (_ *warden, err error) {
	w := &warden{cfg: cfg, logger: log}

	driver := deps.driver
	if driver == nil {
		driver = riak.NewCLIDriver(&cfg.Node, riak.ExecRunner{}, log)
	}

	// The node is built first so a bad provisioning configuration is
	// rejected before NATS or Postgres are contacted.
	w.node, err = riak.NewNode(riak.NodeOptions{
		Config: cfg.Node,
		Driver: driver,
		Logger: log,
		Gate:   w,
	})
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			w.closeConnections()
		}
	}()

	if cfg.HA.Mode == haModeKV || (cfg.eventsEnabled() && deps.publisher == nil) {
		w.nc, err = natsutil.Connect(cfg.NATS.URL, cfg.ServiceName, cfg.NATS.Security, log)
		if err != nil {
			return nil, err
		}
	}

	if err = w.buildHA(); err != nil {
		return nil, err
	}

	if err = w.buildEvents(ctx, deps.publisher); err != nil {
		return nil, err
	}

	if err = w.buildHistory(ctx, deps.historyDB); err != nil {
		return nil, err
	}

	return w, nil
}

// IsActive implements feed.Gate by deferring to the HA source.
func (w *warden) IsActive() bool {
	return w.haSource != nil && w.haSource.IsActive()
}

func (w *warden) buildHA() error {
	if w.cfg.HA.Mode != haModeKV {
		w.haSource = ha.NewStandalone(w.cfg.HA.NodeID)
		return nil
	}

	src, err := ha.NewKVSource(ha.KVSourceConfig{
		Conn:   w.nc,
		Domain: w.cfg.NATS.Domain,
		Bucket: w.cfg.HA.Bucket,
		Key:    w.cfg.HA.Key,
		OwnID:  w.cfg.HA.NodeID,
		Logger: w.logger,
	})
	if err != nil {
		return err
	}

	w.haSource, w.kvSource = src, src

	return nil
}

func (w *warden) buildEvents(ctx context.Context, pub events.Publisher) error {
	if !w.cfg.eventsEnabled() {
		return nil
	}

	if pub == nil {
		natsPub, err := events.NewNATSPublisher(ctx, w.nc, events.PublisherConfig{
			Stream: w.cfg.Events.Stream,
			Domain: w.cfg.NATS.Domain,
			Source: w.cfg.ServiceName,
		}, w.logger)
		if err != nil {
			return err
		}

		pub = natsPub
	}

	w.forwarder = events.NewForwarder(events.ForwarderConfig{
		EntityID:  w.node.ID(),
		Publisher: pub,
		Logger:    w.logger,
		Buffer:    w.cfg.Events.Buffer,
	})

	w.node.Store().Subscribe(w.forwarder.OnChange)
	w.node.AddTransitionListener(w.forwarder.OnTransition)

	return nil
}

func (w *warden) buildHistory(ctx context.Context, db history.BatchSender) error {
	if !w.cfg.historyEnabled() {
		return nil
	}

	if db == nil {
		pool, err := history.NewPool(ctx, &w.cfg.History.Database, w.logger)
		if err != nil {
			return err
		}

		w.pool = pool

		if err := history.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		db = pool
	}

	w.sink = history.NewSink(history.SinkConfig{
		EntityID:      w.node.ID(),
		DB:            db,
		Logger:        w.logger,
		BatchSize:     w.cfg.History.BatchSize,
		FlushInterval: time.Duration(w.cfg.History.FlushInterval),
		MaxAttempts:   w.cfg.History.MaxAttempts,
	})

	w.node.Store().Subscribe(w.sink.OnChange)

	return nil
}

// Start implements lifecycle.Service.
func (w *warden) Start(ctx context.Context) error {
	if err := w.logAdvice(); err != nil {
		return err
	}

	if w.kvSource != nil {
		if err := w.kvSource.Start(ctx); err != nil {
			return err
		}
	}

	if w.forwarder != nil {
		w.forwarder.Start(ctx)
	}

	if w.sink != nil {
		w.sink.Start(ctx)
	}

	if err := w.node.Init(); err != nil {
		return err
	}

	return w.node.Start(ctx)
}

func (w *warden) logAdvice() error {
	ports, err := w.node.RequiredOpenPorts()
	if err != nil {
		return fmt.Errorf("%w: %w", riak.ErrProvisioning, err)
	}

	w.logger.Info().
		Interface("provisioning_flags", w.node.ProvisioningFlags()).
		Int("required_open_ports", len(ports)).
		Ints("service_ports", []int{w.node.WebPort(), w.node.PBPort(), w.node.HandoffListenerPort(), w.node.EPMDListenerPort()}).
		Bool("package_url_provided", w.node.IsPackageDownloadURLProvided()).
		Msg("Provisioning advice")

	return nil
}

// Stop implements lifecycle.Service. Every component is stopped even when an
// earlier one fails.
func (w *warden) Stop(ctx context.Context) error {
	var errs []error

	if err := w.node.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("node: %w", err))
	}

	if w.forwarder != nil {
		if err := w.forwarder.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if w.sink != nil {
		if err := w.sink.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("history: %w", err))
		}
	}

	if w.kvSource != nil {
		if err := w.kvSource.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ha: %w", err))
		}
	}

	w.closeConnections()

	return errors.Join(errs...)
}

func (w *warden) closeConnections() {
	if w.nc != nil {
		if err := w.nc.Drain(); err != nil {
			w.logger.Debug().Err(err).Msg("NATS drain failed")
		}

		w.nc = nil
	}

	if w.pool != nil {
		w.pool.Close()
		w.pool = nil
	}
}
