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

package ha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/nodewarden/pkg/logger"
)

var (
	// ErrSourceRunning is returned by Start on a source already watching.
	ErrSourceRunning = errors.New("ha source already running")

	errNoConn = errors.New("nats connection is required")
	errNoKey  = errors.New("bucket and key are required")
)

// KVSourceConfig configures a KVSource.
type KVSourceConfig struct {
	Conn   *nats.Conn
	Domain string
	Bucket string
	Key    string
	// OwnID identifies this management node in the published summary.
	OwnID  string
	Logger logger.Logger
}

// KVSource tracks an HA summary published as JSON under a JetStream KV key by
// whatever elects the management master. The source is inactive until a
// summary naming OwnID as master has been read, and again after the key is
// deleted.
type KVSource struct {
	cfg    KVSourceConfig
	logger logger.Logger

	mu      sync.RWMutex
	summary Summary
	known   bool
	cancel  context.CancelFunc
	done    chan struct{}
	ready   chan struct{}
}

// NewKVSource validates cfg. Call Start to begin watching.
func NewKVSource(cfg KVSourceConfig) (*KVSource, error) {
	if cfg.Conn == nil {
		return nil, errNoConn
	}

	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, errNoKey
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &KVSource{cfg: cfg, logger: log}, nil
}

// Start opens (creating if needed) the bucket and watches the key until Stop.
func (s *KVSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSourceRunning
	}

	kv, err := s.bucket(ctx)
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	watcher, err := kv.Watch(watchCtx, s.cfg.Key)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to watch %s/%s: %w", s.cfg.Bucket, s.cfg.Key, err)
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	s.ready = make(chan struct{})

	go s.watch(watchCtx, watcher, s.done, s.ready)

	return nil
}

func (s *KVSource) bucket(ctx context.Context) (jetstream.KeyValue, error) {
	var (
		js  jetstream.JetStream
		err error
	)

	if s.cfg.Domain != "" {
		js, err = jetstream.NewWithDomain(s.cfg.Conn, s.cfg.Domain)
	} else {
		js, err = jetstream.New(s.cfg.Conn)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, s.cfg.Bucket)
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, fmt.Errorf("failed to open bucket %s: %w", s.cfg.Bucket, err)
	}

	kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: s.cfg.Bucket})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", s.cfg.Bucket, err)
	}

	return kv, nil
}

func (s *KVSource) watch(ctx context.Context, watcher jetstream.KeyWatcher, done, ready chan struct{}) {
	defer close(done)
	defer func() { _ = watcher.Stop() }()

	readyOnce := sync.OnceFunc(func() { close(ready) })
	defer readyOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-watcher.Updates():
			if !ok {
				return
			}

			// nil marks the end of the initial values
			if entry == nil {
				readyOnce()
				continue
			}

			s.apply(entry)
		}
	}
}

func (s *KVSource) apply(entry jetstream.KeyValueEntry) {
	if op := entry.Operation(); op == jetstream.KeyValueDelete || op == jetstream.KeyValuePurge {
		s.mu.Lock()
		s.summary, s.known = Summary{}, false
		s.mu.Unlock()

		s.logger.Warn().Str("key", entry.Key()).Msg("HA summary removed, deactivating")

		return
	}

	var summary Summary
	if err := json.Unmarshal(entry.Value(), &summary); err != nil {
		s.logger.Warn().Err(err).Uint64("revision", entry.Revision()).Msg("Ignoring malformed HA summary")
		return
	}

	summary.OwnID = s.cfg.OwnID

	s.mu.Lock()
	wasActive := s.known && s.summary.IsMaster()
	s.summary, s.known = summary, true
	s.mu.Unlock()

	if active := summary.IsMaster(); active != wasActive {
		s.logger.Info().Bool("active", active).Str("master_id", summary.MasterID).Msg("HA status changed")
	}
}

// Ready is closed once the key's initial value has been read.
func (s *KVSource) Ready() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ready
}

// IsActive reports whether the last summary names this node master.
func (s *KVSource) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.known && s.summary.IsMaster()
}

// Summary returns the last summary read, with OwnID set to this node.
func (s *KVSource) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.known {
		return Summary{OwnID: s.cfg.OwnID}
	}

	out := s.summary
	out.Nodes = make(map[string]NodeRecord, len(s.summary.Nodes))

	for id, rec := range s.summary.Nodes {
		out.Nodes[id] = rec
	}

	return out
}

// Stop ends the watch. It is safe to call more than once.
func (s *KVSource) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
