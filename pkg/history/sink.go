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

// Package history records sensor value changes to Postgres.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

const (
	DefaultBatchSize     = 500
	DefaultFlushInterval = 5 * time.Second
	// DefaultMaxPending bounds memory while the database is unreachable.
	DefaultMaxPending = 50_000
	// DefaultMaxAttempts is how many flushes may fail on the same batch
	// before it is discarded.
	DefaultMaxAttempts = 3

	createTableSQL = `CREATE TABLE IF NOT EXISTS sensor_samples (
	entity_id   TEXT        NOT NULL,
	sensor      TEXT        NOT NULL,
	value       JSONB       NOT NULL,
	observed_at TIMESTAMPTZ NOT NULL
)`
	createIndexSQL = `CREATE INDEX IF NOT EXISTS sensor_samples_entity_sensor_time
	ON sensor_samples (entity_id, sensor, observed_at DESC)`

	insertSQL = `INSERT INTO sensor_samples (entity_id, sensor, value, observed_at) VALUES ($1, $2, $3, $4)`
)

// ErrSinkClosed is returned by Flush after Close.
var ErrSinkClosed = errors.New("history sink closed")

// BatchSender is the subset of *pgxpool.Pool the sink writes through.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Execer runs schema statements.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the samples table and its index if missing.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range []string{createTableSQL, createIndexSQL} {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("history: schema: %w", err)
		}
	}

	return nil
}

type sample struct {
	sensor     string
	value      []byte
	observedAt time.Time
}

// SinkConfig configures a Sink.
type SinkConfig struct {
	EntityID      string
	DB            BatchSender
	Logger        logger.Logger
	BatchSize     int
	FlushInterval time.Duration
	MaxPending    int
	MaxAttempts   int
}

// Sink buffers sensor changes and writes them in batches, when BatchSize
// samples are pending or every FlushInterval, whichever comes first.
type Sink struct {
	entityID    string
	db          BatchSender
	logger      logger.Logger
	batchSize   int
	interval    time.Duration
	maxPending  int
	maxAttempts int

	mu           sync.Mutex
	pending      []sample
	dropped      uint64
	discarded    uint64
	headFailures int
	closed       bool

	flushMu sync.Mutex
	kick    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// NewSink returns a sink; Start launches its flush loop.
func NewSink(cfg SinkConfig) *Sink {
	s := &Sink{
		entityID:    cfg.EntityID,
		db:          cfg.DB,
		logger:      cfg.Logger,
		batchSize:   cfg.BatchSize,
		interval:    cfg.FlushInterval,
		maxPending:  cfg.MaxPending,
		maxAttempts: cfg.MaxAttempts,
		kick:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	if s.logger == nil {
		s.logger = logger.NewTestLogger()
	}

	if s.batchSize <= 0 {
		s.batchSize = DefaultBatchSize
	}

	if s.interval <= 0 {
		s.interval = DefaultFlushInterval
	}

	if s.maxPending <= 0 {
		s.maxPending = DefaultMaxPending
	}

	if s.maxAttempts <= 0 {
		s.maxAttempts = DefaultMaxAttempts
	}

	return s
}

// OnChange is a sensor.Listener. It never blocks on the database.
func (s *Sink) OnChange(c sensor.Change) {
	value, err := json.Marshal(c.Value)
	if err != nil {
		s.logger.Debug().Err(err).Str("sensor", string(c.Key)).Msg("Skipping sensor value that cannot be encoded")
		return
	}

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	if len(s.pending) >= s.maxPending {
		s.dropped++
		s.mu.Unlock()

		return
	}

	s.pending = append(s.pending, sample{sensor: string(c.Key), value: value, observedAt: c.Time})
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()

	if full {
		select {
		case s.kick <- struct{}{}:
		default:
		}
	}
}

// Pending reports the number of buffered samples.
func (s *Sink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}

// Dropped reports samples discarded because MaxPending samples were already
// buffered.
func (s *Sink) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dropped
}

// Discarded reports samples thrown away after their batch failed
// MaxAttempts flushes in a row.
func (s *Sink) Discarded() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discarded
}

// Start launches the flush loop.
func (s *Sink) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.closed {
		return
	}

	s.started = true

	go s.run(context.WithoutCancel(ctx))
}

func (s *Sink) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		case <-s.kick:
		}

		if err := s.flush(ctx); err != nil {
			s.logger.Warn().Err(err).Str("entity_id", s.entityID).Msg("Sensor history flush failed")
		}
	}
}

// Flush writes every pending sample now.
func (s *Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return ErrSinkClosed
	}

	return s.flush(ctx)
}

func (s *Sink) flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	for {
		s.mu.Lock()
		n := min(len(s.pending), s.batchSize)
		chunk := append([]sample(nil), s.pending[:n]...)
		s.mu.Unlock()

		if n == 0 {
			return nil
		}

		if err := s.write(ctx, chunk); err != nil {
			return s.recordFailure(n, err)
		}

		s.mu.Lock()
		s.pending = s.pending[n:]
		s.headFailures = 0
		s.mu.Unlock()
	}
}

// recordFailure counts a failed write of the n samples at the head of the
// buffer and discards them once they have failed maxAttempts times.
func (s *Sink) recordFailure(n int, err error) error {
	s.mu.Lock()
	s.headFailures++

	attempts := s.headFailures
	if attempts < s.maxAttempts {
		s.mu.Unlock()
		return err
	}

	s.pending = s.pending[n:]
	s.discarded += uint64(n)
	s.headFailures = 0
	s.mu.Unlock()

	s.logger.Error().Err(err).
		Str("entity_id", s.entityID).
		Int("samples", n).
		Int("attempts", attempts).
		Msg("Discarding sensor history batch")

	return fmt.Errorf("history: batch discarded after %d attempts: %w", attempts, err)
}

func (s *Sink) write(ctx context.Context, chunk []sample) error {
	batch := &pgx.Batch{}
	for _, smp := range chunk {
		batch.Queue(insertSQL, s.entityID, smp.sensor, smp.value, smp.observedAt)
	}

	err := sendBatchExecAll(ctx, batch, s.db.SendBatch)
	if err != nil && isRetryable(err) {
		s.logger.Debug().Err(err).Msg("Retrying sensor history batch")
		err = sendBatchExecAll(ctx, batch, s.db.SendBatch)
	}

	return err
}

// Close stops the flush loop and writes what is still pending.
func (s *Sink) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	started := s.started
	s.mu.Unlock()

	if started {
		close(s.stop)

		select {
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return s.flush(ctx)
}

func sendBatchExecAll(ctx context.Context, batch *pgx.Batch, send func(context.Context, *pgx.Batch) pgx.BatchResults) (err error) {
	if batch == nil || batch.Len() == 0 {
		return nil
	}

	br := send(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("history batch close: %w", closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err = br.Exec(); err != nil {
			return fmt.Errorf("history insert (command %d): %w", i, err)
		}
	}

	return nil
}

// isRetryable reports deadlocks and serialization failures.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case "40P01", "40001":
		return true
	default:
		return false
	}
}
