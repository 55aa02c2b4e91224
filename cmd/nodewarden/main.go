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

// Command nodewarden manages one Riak KV node: it starts and stops the node
// process, polls its statistics into sensors and publishes what it sees.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carverauto/nodewarden/pkg/config"
	"github.com/carverauto/nodewarden/pkg/lifecycle"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/version"
)

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/nodewarden/nodewarden.json", "Path to nodewarden config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Fprintln(os.Stdout, version.GetFullVersion())
		return nil
	}

	ctx := context.Background()

	var cfg Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	wardenLogger, err := lifecycle.CreateComponentLogger(ctx, cfg.ServiceName, logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			log.Printf("Failed to shut down logger: %v", err)
		}
	}()

	initTelemetry(ctx, &cfg, logConfig, wardenLogger)

	w, err := newWarden(ctx, &cfg, wardenLogger, wardenDeps{})
	if err != nil {
		return err
	}

	return lifecycle.RunService(ctx, &lifecycle.ServiceOptions{
		Name:    cfg.ServiceName,
		Service: w,
		Logger:  wardenLogger,
	})
}

func initTelemetry(ctx context.Context, cfg *Config, logConfig *logger.Config, log logger.Logger) {
	otelCfg := logConfig.OTel

	if _, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.GetVersion(),
		OTel:           &otelCfg,
	}); err != nil {
		log.Warn().Err(err).Msg("Tracing disabled")
	}

	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return
	}

	_, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.GetVersion(),
		OTel:           &otelCfg,
		ExportInterval: time.Duration(cfg.Metrics.ExportInterval),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Metric export disabled")
	}
}
