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

// Package ha exposes the high-availability status of the management plane.
// Feeds consult it to decide whether this instance should be probing at all.
package ha

import (
	"time"

	"github.com/google/uuid"
)

// Status is the HA role of a management node.
type Status string

const (
	StatusMaster     Status = "MASTER"
	StatusStandby    Status = "STANDBY"
	StatusHotStandby Status = "HOT_STANDBY"
	StatusFailed     Status = "FAILED"
	StatusTerminated Status = "TERMINATED"
	StatusUnknown    Status = "UNKNOWN"
)

// NodeRecord is one management node as seen by the cluster.
type NodeRecord struct {
	NodeID          string    `json:"nodeId"`
	Status          Status    `json:"status"`
	LocalTimestamp  time.Time `json:"localTimestamp"`
	RemoteTimestamp time.Time `json:"remoteTimestamp"`
}

// Summary is a point-in-time view of the management cluster.
type Summary struct {
	OwnID    string                `json:"ownId"`
	MasterID string                `json:"masterId"`
	Nodes    map[string]NodeRecord `json:"nodes"`
}

// IsMaster reports whether OwnID is the current master.
func (s Summary) IsMaster() bool {
	return s.OwnID != "" && s.OwnID == s.MasterID
}

// StatusSource is consumed by feeds as their activation gate.
type StatusSource interface {
	IsActive() bool
	Summary() Summary
}

// Standalone is the status of a single management node with no peers. It is
// always master.
type Standalone struct {
	id  string
	now func() time.Time
}

// NewStandalone returns a standalone source. An empty id is replaced with a
// random one.
func NewStandalone(id string) *Standalone {
	if id == "" {
		id = uuid.NewString()
	}

	return &Standalone{id: id, now: time.Now}
}

// IsActive is always true for a standalone instance.
func (*Standalone) IsActive() bool { return true }

// ID returns the generated instance ID.
func (s *Standalone) ID() string { return s.id }

// Summary reports this node as master, with the local and remote timestamps
// equal since there is no remote view.
func (s *Standalone) Summary() Summary {
	ts := s.now()

	return Summary{
		OwnID:    s.id,
		MasterID: s.id,
		Nodes: map[string]NodeRecord{
			s.id: {NodeID: s.id, Status: StatusMaster, LocalTimestamp: ts, RemoteTimestamp: ts},
		},
	}
}
