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

package history

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/models"
)

const defaultPort = 5432

// Database holds Postgres connection settings.
type Database struct {
	Host               string            `json:"host"`
	Port               int               `json:"port"`
	Database           string            `json:"database"`
	Username           string            `json:"username"`
	Password           string            `json:"password"`
	SSLMode            string            `json:"ssl_mode"`
	ApplicationName    string            `json:"application_name"`
	MaxConnections     int32             `json:"max_connections"`
	MaxConnLifetime    models.Duration   `json:"max_conn_lifetime"`
	StatementTimeout   models.Duration   `json:"statement_timeout"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params,omitempty"`
}

func (d *Database) connString() string {
	port := d.Port
	if port == 0 {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, port),
		Path:   "/" + d.Database,
	}

	if d.Username != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.Username, d.Password)
		} else {
			u.User = url.User(d.Username)
		}
	}

	query := u.Query()

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query.Set("sslmode", sslMode)

	if d.ApplicationName != "" {
		query.Set("application_name", d.ApplicationName)
	}

	u.RawQuery = query.Encode()

	return u.String()
}

// NewPool opens a pgx pool for d.
func NewPool(ctx context.Context, d *Database, log logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfig(d)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("history: failed to initialize pool: %w", err)
	}

	if log != nil {
		log.Info().
			Str("host", d.Host).
			Str("database", d.Database).
			Int32("max_conns", poolConfig.MaxConns).
			Msg("Connected to sensor history database")
	}

	return pool, nil
}

func poolConfig(d *Database) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(d.connString())
	if err != nil {
		return nil, fmt.Errorf("history: failed to parse connection string: %w", err)
	}

	if d.MaxConnections > 0 {
		cfg.MaxConns = d.MaxConnections
	}

	if d.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = time.Duration(d.MaxConnLifetime)
	}

	if cfg.ConnConfig.RuntimeParams == nil {
		cfg.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range d.ExtraRuntimeParams {
		if k == "" {
			continue
		}

		cfg.ConnConfig.RuntimeParams[k] = v
	}

	if d.StatementTimeout > 0 {
		ms := time.Duration(d.StatementTimeout) / time.Millisecond
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(int64(ms), 10)
	}

	return cfg, nil
}
