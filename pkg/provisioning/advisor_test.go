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

package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredOpenPorts_ExclusiveRange(t *testing.T) {
	ports, err := Advisor{}.RequiredOpenPorts([]int{80}, 6000, 7999)
	require.NoError(t, err)

	assert.Len(t, ports, 1999)
	assert.Equal(t, 80, ports[0])
	assert.Equal(t, 6001, ports[1])
	assert.Equal(t, 7998, ports[len(ports)-1])
	assert.NotContains(t, ports, 6000)
	assert.NotContains(t, ports, 7999)
}

func TestRequiredOpenPorts_Union(t *testing.T) {
	ports, err := Advisor{}.RequiredOpenPorts([]int{8098, 6005, 8098, 22}, 6000, 6010)
	require.NoError(t, err)

	assert.Equal(t, []int{22, 6001, 6002, 6003, 6004, 6005, 6006, 6007, 6008, 6009, 8098}, ports)
}

func TestRequiredOpenPorts_AdjacentBoundsAddNothing(t *testing.T) {
	ports, err := Advisor{}.RequiredOpenPorts(nil, 6000, 6001)
	require.NoError(t, err)
	assert.Empty(t, ports)
}

func TestRequiredOpenPorts_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		inherited  []int
		start, end int
	}{
		{"inverted", nil, 7999, 6000},
		{"degenerate", nil, 6000, 6000},
		{"below range", nil, 0, 10},
		{"above range", nil, 6000, 70000},
		{"bad inherited", []int{-1}, 6000, 7999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Advisor{}.RequiredOpenPorts(tt.inherited, tt.start, tt.end)
			require.ErrorIs(t, err, ErrInvalidPortRange)
		})
	}
}

func TestFlags(t *testing.T) {
	inherited := map[string]any{"minRam": 4096, FlagOS64Bit: false}

	flags := Advisor{}.Flags(inherited)

	assert.Equal(t, true, flags[FlagOS64Bit])
	assert.Equal(t, 4096, flags["minRam"])
	assert.Equal(t, false, inherited[FlagOS64Bit], "inherited map is not modified")

	assert.Equal(t, map[string]any{FlagOS64Bit: true}, Advisor{}.Flags(nil))
}
