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
	"errors"
	"fmt"

	"github.com/carverauto/nodewarden/pkg/history"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/models"
	"github.com/carverauto/nodewarden/pkg/natsutil"
	"github.com/carverauto/nodewarden/pkg/riak"
)

const (
	haModeStandalone = "standalone"
	haModeKV         = "kv"

	defaultHABucket = "nodewarden-ha"
	defaultHAKey    = "summary"
)

var (
	errUnknownHAMode = errors.New("unknown ha mode")
	errNATSRequired  = errors.New("nats.url is required")
	errHistoryDB     = errors.New("history.database.host is required")
)

// Config is the nodewarden process configuration.
type Config struct {
	ServiceName string         `json:"service_name"`
	Node        riak.Config    `json:"node"`
	Logging     *logger.Config `json:"logging,omitempty"`
	Metrics     *MetricsConfig `json:"metrics,omitempty"`
	NATS        *NATSConfig    `json:"nats,omitempty"`
	HA          HAConfig       `json:"ha"`
	Events      *EventsConfig  `json:"events,omitempty"`
	History     *HistoryConfig `json:"history,omitempty"`
}

// MetricsConfig enables OTLP metric export through the logging OTel endpoint.
type MetricsConfig struct {
	Enabled        bool            `json:"enabled"`
	ExportInterval models.Duration `json:"export_interval"`
}

type NATSConfig struct {
	URL      string             `json:"url"`
	Domain   string             `json:"domain,omitempty"`
	Security *natsutil.Security `json:"security,omitempty"`
}

// HAConfig selects where the management HA status comes from.
type HAConfig struct {
	Mode   string `json:"mode"`
	NodeID string `json:"node_id"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type EventsConfig struct {
	Enabled bool   `json:"enabled"`
	Stream  string `json:"stream"`
	Buffer  int    `json:"buffer"`
}

type HistoryConfig struct {
	Enabled       bool             `json:"enabled"`
	Database      history.Database `json:"database"`
	BatchSize     int              `json:"batch_size"`
	FlushInterval models.Duration  `json:"flush_interval"`
	MaxAttempts   int              `json:"max_attempts"`
}

// Validate applies defaults and rejects inconsistent sections.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		c.ServiceName = "nodewarden"
	}

	if err := c.Node.Validate(); err != nil {
		return fmt.Errorf("node: %w", err)
	}

	switch c.HA.Mode {
	case "", haModeStandalone:
		c.HA.Mode = haModeStandalone
	case haModeKV:
		if !c.natsConfigured() {
			return fmt.Errorf("ha: %w", errNATSRequired)
		}

		if c.HA.Bucket == "" {
			c.HA.Bucket = defaultHABucket
		}

		if c.HA.Key == "" {
			c.HA.Key = defaultHAKey
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownHAMode, c.HA.Mode)
	}

	if c.Events != nil && c.Events.Enabled && !c.natsConfigured() {
		return fmt.Errorf("events: %w", errNATSRequired)
	}

	if c.History != nil && c.History.Enabled && c.History.Database.Host == "" {
		return errHistoryDB
	}

	return nil
}

func (c *Config) natsConfigured() bool {
	return c.NATS != nil && c.NATS.URL != ""
}

func (c *Config) eventsEnabled() bool {
	return c.Events != nil && c.Events.Enabled
}

func (c *Config) historyEnabled() bool {
	return c.History != nil && c.History.Enabled
}
