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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePortRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PortRange
		wantErr error
	}{
		{name: "single port", input: "8098", want: PortRange{Start: 8098, End: 8098}},
		{name: "open ended", input: "6000+", want: PortRange{Start: 6000, End: 65535}},
		{name: "bounded", input: "6000-7999", want: PortRange{Start: 6000, End: 7999}},
		{name: "padded", input: " 4369 ", want: PortRange{Start: 4369, End: 4369}},
		{name: "empty", input: "", wantErr: ErrEmptyPortRange},
		{name: "inverted", input: "7999-6000", wantErr: ErrInvalidPortRange},
		{name: "not a number", input: "http", wantErr: ErrInvalidPortRange},
		{name: "out of range", input: "70000", wantErr: ErrInvalidPortRange},
		{name: "zero", input: "0", wantErr: ErrInvalidPortRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePortRange(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPortRange_First(t *testing.T) {
	first, err := PortRange{Start: 6000, End: 65535}.First()
	require.NoError(t, err)
	assert.Equal(t, 6000, first)

	_, err = PortRange{}.First()
	require.ErrorIs(t, err, ErrEmptyPortRange)
}

func TestPortRange_JSON(t *testing.T) {
	var cfg struct {
		Web    PortRange `json:"web"`
		Erlang PortRange `json:"erlang"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"web": 8098, "erlang": "6000+"}`), &cfg))
	assert.Equal(t, SinglePort(8098), cfg.Web)
	assert.Equal(t, "6000+", cfg.Erlang.String())

	out, err := json.Marshal(cfg.Web)
	require.NoError(t, err)
	assert.JSONEq(t, `"8098"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"web": true}`), &cfg))
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"500ms"`), &d))
	assert.Equal(t, 500*time.Millisecond, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000`), &d))
	assert.Equal(t, time.Millisecond, time.Duration(d))

	require.ErrorIs(t, json.Unmarshal([]byte(`"soon"`), &d), errInvalidDuration)
	require.ErrorIs(t, json.Unmarshal([]byte(`[]`), &d), errInvalidDuration)
}

func TestDuration_Or(t *testing.T) {
	assert.Equal(t, time.Second, Duration(0).Or(time.Second))
	assert.Equal(t, time.Minute, Duration(time.Minute).Or(time.Second))
}
