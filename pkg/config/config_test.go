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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/nodewarden/pkg/models"
)

var errNameRequired = errors.New("name is required")

type nestedConfig struct {
	URL     string          `json:"url"`
	Enabled bool            `json:"enabled"`
	Timeout models.Duration `json:"timeout"`
}

type testConfig struct {
	Name    string           `json:"name"`
	Port    models.PortRange `json:"port"`
	Retries int              `json:"retries"`
	Tags    []string         `json:"tags"`
	Nested  nestedConfig     `json:"nested"`
	Events  *nestedConfig    `json:"events,omitempty"`
	Ignored string           `json:"-"`
}

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errNameRequired
	}

	if c.Retries == 0 {
		c.Retries = 3
	}

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidate_File(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{"name":"riak-1","port":"8098","nested":{"url":"nats://x","timeout":"2s"}}`)

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "riak-1", cfg.Name)
	assert.Equal(t, models.SinglePort(8098), cfg.Port)
	assert.Equal(t, 3, cfg.Retries, "Validate should apply defaults")
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Nested.Timeout))
}

func TestLoadAndValidate_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv("RIAK_NAME", `riak-"quoted"`)

	path := writeConfig(t, `{"name":"${RIAK_NAME}","tags":["${UNSET_FOR_TEST}","$literal"]}`)

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, `riak-"quoted"`, cfg.Name)
	assert.Equal(t, []string{"", "$literal"}, cfg.Tags)
}

func TestLoadAndValidate_ValidationFailure(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := writeConfig(t, `{"port":"8098"}`)

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errNameRequired)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "/does/not/exist.json", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadAndValidate_InvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "consul")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAndValidate_RequiresPointer(t *testing.T) {
	err := NewConfig(nil).LoadAndValidate(context.Background(), "", testConfig{})
	require.ErrorIs(t, err, errInvalidConfigPtr)
}

func TestEnvConfigLoader_Fields(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("NODEWARDEN_NAME", "riak-env")
	t.Setenv("NODEWARDEN_PORT", "6000+")
	t.Setenv("NODEWARDEN_RETRIES", "7")
	t.Setenv("NODEWARDEN_TAGS", "a, b,c")
	t.Setenv("NODEWARDEN_NESTED_URL", "nats://nats:4222")
	t.Setenv("NODEWARDEN_NESTED_ENABLED", "true")
	t.Setenv("NODEWARDEN_NESTED_TIMEOUT", "750ms")

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "riak-env", cfg.Name)
	assert.Equal(t, models.PortRange{Start: 6000, End: 65535}, cfg.Port)
	assert.Equal(t, 7, cfg.Retries)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "nats://nats:4222", cfg.Nested.URL)
	assert.True(t, cfg.Nested.Enabled)
	assert.Equal(t, 750*time.Millisecond, time.Duration(cfg.Nested.Timeout))
	assert.Nil(t, cfg.Events, "pointer sections without variables stay nil")
}

func TestEnvConfigLoader_PointerSection(t *testing.T) {
	t.Setenv("APP_NAME", "x")
	t.Setenv("APP_EVENTS_URL", "nats://events")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", &cfg))

	require.NotNil(t, cfg.Events)
	assert.Equal(t, "nats://events", cfg.Events.URL)
}

func TestEnvConfigLoader_ConfigJSON(t *testing.T) {
	t.Setenv("APP_CONFIG_JSON", `{"name":"from-json","retries":2}`)
	t.Setenv("APP_NAME", "ignored")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "from-json", cfg.Name)
	assert.Equal(t, 2, cfg.Retries)
}

func TestEnvConfigLoader_InvalidValue(t *testing.T) {
	t.Setenv("APP_RETRIES", "many")

	var cfg testConfig
	err := NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_RETRIES")
}

func TestEnvConfigLoader_RejectsNonStruct(t *testing.T) {
	var s string
	require.ErrorIs(t, NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
	require.ErrorIs(t, NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", nil), ErrDstMustBeNonNilPointer)
}

func TestEnvConfigLoader_PointerUnmarshaler(t *testing.T) {
	type portsConfig struct {
		Web  *models.PortRange `json:"web_port"`
		Solr *models.PortRange `json:"solr_port"`
	}

	t.Setenv("APP_WEB_PORT", "18098")

	var cfg portsConfig
	require.NoError(t, NewEnvConfigLoader(nil, "APP_").Load(context.Background(), "", &cfg))

	require.NotNil(t, cfg.Web)
	assert.Equal(t, models.SinglePort(18098), *cfg.Web)
	assert.Nil(t, cfg.Solr)
}
