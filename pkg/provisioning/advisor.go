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

// Package provisioning computes what a Riak node needs from the
// infrastructure before it exists: provisioning flags and open ports.
package provisioning

import (
	"errors"
	"fmt"
	"sort"
)

// FlagOS64Bit asks the provisioning layer for a 64-bit operating system.
const FlagOS64Bit = "os64Bit"

const (
	minPort = 1
	maxPort = 65535
)

// ErrInvalidPortRange is returned for inverted ranges and ports outside 1..65535.
var ErrInvalidPortRange = errors.New("invalid port range")

// Advisor is a pure function of its inputs; it needs no driver or network.
type Advisor struct{}

// Flags returns a copy of inherited with the 64-bit OS flag forced on.
func (Advisor) Flags(inherited map[string]any) map[string]any {
	out := make(map[string]any, len(inherited)+1)
	for k, v := range inherited {
		out[k] = v
	}

	out[FlagOS64Bit] = true

	return out
}

// RequiredOpenPorts returns the sorted union of inherited and every port
// strictly between start and end. Both bounds are excluded, so (6000, 7999)
// adds 1998 ports.
func (Advisor) RequiredOpenPorts(inherited []int, start, end int) ([]int, error) {
	if start < minPort || end > maxPort {
		return nil, fmt.Errorf("%w: (%d, %d) outside %d..%d", ErrInvalidPortRange, start, end, minPort, maxPort)
	}

	if start >= end {
		return nil, fmt.Errorf("%w: start %d is not below end %d", ErrInvalidPortRange, start, end)
	}

	set := make(map[int]struct{}, len(inherited)+end-start)

	for _, p := range inherited {
		if p < minPort || p > maxPort {
			return nil, fmt.Errorf("%w: inherited port %d", ErrInvalidPortRange, p)
		}

		set[p] = struct{}{}
	}

	for p := start + 1; p < end; p++ {
		set[p] = struct{}{}
	}

	ports := make([]int, 0, len(set))
	for p := range set {
		ports = append(ports, p)
	}

	sort.Ints(ports)

	return ports, nil
}
