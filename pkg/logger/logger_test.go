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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level == "" {
		t.Error("Default config should have a level set")
	}

	if config.Output == "" {
		t.Error("Default config should have an output set")
	}

	if config.OTel.ServiceName == "" {
		t.Error("Default OTel config should have a service name")
	}
}

func TestConfig_ParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    zerolog.Level
		wantErr bool
	}{
		{name: "empty defaults to info", config: Config{}, want: zerolog.InfoLevel},
		{name: "debug flag wins", config: Config{Level: "error", Debug: true}, want: zerolog.DebugLevel},
		{name: "explicit level", config: Config{Level: "warn"}, want: zerolog.WarnLevel},
		{name: "invalid level", config: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.ParseLevel()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{name: "string duration", input: `"5s"`, expected: Duration(5 * time.Second)},
		{name: "numeric nanoseconds", input: `5000000000`, expected: Duration(5 * time.Second)},
		{name: "invalid string", input: `"invalid"`, wantErr: true},
		{name: "invalid type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestNewTestLogger_Discards(t *testing.T) {
	l := NewTestLogger()

	l.Info().Str("k", "v").Msg("discarded")
	assert.Equal(t, zerolog.Disabled, l.WithComponent("feed").GetLevel())
}

func TestOTelWriter_Disabled(t *testing.T) {
	writer, err := NewOTelWriter(context.Background(), OTelConfig{Enabled: false})

	require.ErrorIs(t, err, ErrOTelLoggingDisabled)
	assert.Nil(t, writer)
}

func TestOTelWriter_NoEndpoint(t *testing.T) {
	writer, err := NewOTelWriter(context.Background(), OTelConfig{Enabled: true})

	require.ErrorIs(t, err, ErrOTelEndpointRequired)
	assert.Nil(t, writer)
}

func TestInitializeMetrics_Disabled(t *testing.T) {
	provider, err := InitializeMetrics(context.Background(), MetricsConfig{})

	require.ErrorIs(t, err, ErrOTelMetricsDisabled)
	assert.Nil(t, provider)
}

func TestMapZerologLevelToOTel(t *testing.T) {
	tests := []struct {
		zerologLevel string
		expected     string
	}{
		{"trace", "TRACE"},
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"fatal", "FATAL"},
		{"panic", "FATAL"},
		{"unknown", "INFO"},
	}

	for _, test := range tests {
		result := mapZerologLevelToOTel(test.zerologLevel)
		if result.String() != test.expected {
			t.Errorf("mapZerologLevelToOTel(%s) = %s, expected %s",
				test.zerologLevel, result.String(), test.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	long := make([]byte, maxAttributeValueLength+10)
	for i := range long {
		long[i] = 'a'
	}

	got := truncateString(string(long), maxAttributeValueLength)

	assert.Len(t, got, maxAttributeValueLength)
	assert.Equal(t, "...", got[len(got)-3:])
	assert.Equal(t, "short", truncateString("short", maxAttributeValueLength))
}

func TestAttribute_KeepsTypes(t *testing.T) {
	assert.Equal(t, otellog.KindInt64, attribute("riak.node.gets", float64(42)).Value.Kind())
	assert.Equal(t, otellog.KindFloat64, attribute("rate", 1.5).Value.Kind())
	assert.Equal(t, otellog.KindBool, attribute("service.isUp", true).Value.Kind())

	members := attribute("ring_members", []interface{}{"riak@a", "riak@b"})
	assert.Equal(t, otellog.KindString, members.Value.Kind())
	assert.JSONEq(t, `["riak@a","riak@b"]`, members.Value.AsString())

	assert.Equal(t, "null", attribute("err", nil).Value.AsString())
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer

	l := Wrap(zerolog.New(&buf).With().Str("entity_id", "riak-1").Logger())
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"entity_id":"riak-1"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	buf.Reset()
	l.SetLevel(zerolog.WarnLevel)
	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	c := l.WithComponent("feed")
	c.Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"component":"feed"`)
}
