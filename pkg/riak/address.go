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

package riak

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// AddressResolver maps a node's internal address to the address the
// management plane can reach, which differs for nodes behind NAT.
type AddressResolver interface {
	Accessible(ctx context.Context, host string, port int) (string, error)
}

// DirectResolver reaches nodes on their internal address.
type DirectResolver struct{}

// Accessible returns host:port unchanged.
func (DirectResolver) Accessible(_ context.Context, host string, port int) (string, error) {
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// MappingResolver consults a static table of internal to external
// host:port pairs.
type MappingResolver struct {
	Mappings map[string]string
	// Fallback resolves addresses missing from Mappings. Nil means a missing
	// mapping is an error.
	Fallback AddressResolver
}

// Accessible looks up host:port in the mapping table.
func (m MappingResolver) Accessible(ctx context.Context, host string, port int) (string, error) {
	internal := net.JoinHostPort(host, strconv.Itoa(port))

	if external, ok := m.Mappings[internal]; ok {
		return external, nil
	}

	if m.Fallback != nil {
		return m.Fallback.Accessible(ctx, host, port)
	}

	return "", fmt.Errorf("%w for %s", errNoMapping, internal)
}

// NewResolver returns a MappingResolver over mappings that falls back to
// direct access, or a DirectResolver when there are no mappings.
func NewResolver(mappings map[string]string) AddressResolver {
	if len(mappings) == 0 {
		return DirectResolver{}
	}

	return MappingResolver{Mappings: mappings, Fallback: DirectResolver{}}
}
