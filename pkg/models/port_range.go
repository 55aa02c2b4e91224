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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	minPort = 1
	maxPort = 65535
)

var (
	ErrInvalidPortRange = errors.New("invalid port range")
	ErrEmptyPortRange   = errors.New("port range is empty")
)

// PortRange is a configured port range such as "8098", "6000+" or "6000-7999".
// An open-ended range ("6000+") extends to the highest valid port.
type PortRange struct {
	Start int
	End   int
}

// SinglePort returns a range holding exactly one port.
func SinglePort(port int) PortRange {
	return PortRange{Start: port, End: port}
}

// ParsePortRange parses the textual port range syntax.
func ParsePortRange(s string) (PortRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PortRange{}, ErrEmptyPortRange
	}

	if strings.HasSuffix(s, "+") {
		start, err := parsePort(strings.TrimSuffix(s, "+"))
		if err != nil {
			return PortRange{}, err
		}

		return PortRange{Start: start, End: maxPort}, nil
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		start, err := parsePort(lo)
		if err != nil {
			return PortRange{}, err
		}

		end, err := parsePort(hi)
		if err != nil {
			return PortRange{}, err
		}

		if end < start {
			return PortRange{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidPortRange, s)
		}

		return PortRange{Start: start, End: end}, nil
	}

	port, err := parsePort(s)
	if err != nil {
		return PortRange{}, err
	}

	return SinglePort(port), nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPortRange, s)
	}

	if port < minPort || port > maxPort {
		return 0, fmt.Errorf("%w: port %d out of range", ErrInvalidPortRange, port)
	}

	return port, nil
}

// First returns the first port of the range.
func (r PortRange) First() (int, error) {
	if r.Start == 0 {
		return 0, ErrEmptyPortRange
	}

	return r.Start, nil
}

func (r PortRange) String() string {
	switch {
	case r.Start == 0:
		return ""
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	case r.End == maxPort:
		return strconv.Itoa(r.Start) + "+"
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}

// UnmarshalJSON accepts a bare port number or the textual range syntax.
func (r *PortRange) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	var (
		parsed PortRange
		err    error
	)

	switch value := v.(type) {
	case float64:
		parsed, err = ParsePortRange(strconv.Itoa(int(value)))
	case string:
		parsed, err = ParsePortRange(value)
	default:
		err = ErrInvalidPortRange
	}

	if err != nil {
		return err
	}

	*r = parsed

	return nil
}

func (r PortRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}
