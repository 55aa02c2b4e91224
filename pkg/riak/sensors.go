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
	"strings"
	"time"

	"github.com/carverauto/nodewarden/pkg/sensor"
)

// FailureValue is written to integer stats sensors when a probe fails. It can
// collide with a real reading of -1; consumers must treat it as "unknown".
const FailureValue int64 = -1

const (
	sensorPrefix = "riak."

	// StatsPeriod is the default cadence of the /stats feed.
	StatsPeriod = 500 * time.Millisecond
	// SlowStatsPeriod applies to the FSM timing sensors.
	SlowStatsPeriod = time.Minute
)

//nolint:gochecknoglobals // sensor catalog
var (
	NodeGets            = sensor.New[int64]("riak.node.gets", "Gets in the last minute")
	NodeGetsTotal       = sensor.New[int64]("riak.node.gets.total", "Total gets since node start")
	NodePuts            = sensor.New[int64]("riak.node.puts", "Puts in the last minute")
	NodePutsTotal       = sensor.New[int64]("riak.node.puts.total", "Total puts since node start")
	VnodeGets           = sensor.New[int64]("riak.vnode.gets", "Vnode gets in the last minute")
	VnodeGetsTotal      = sensor.New[int64]("riak.vnode.gets.total", "Total vnode gets since node start")
	VnodePuts           = sensor.New[int64]("riak.vnode.puts", "Vnode puts in the last minute")
	VnodePutsTotal      = sensor.New[int64]("riak.vnode.puts.total", "Total vnode puts since node start")
	ReadRepairsTotal    = sensor.New[int64]("riak.read.repairs.total", "Total read repairs")
	CoordRedirsTotal    = sensor.New[int64]("riak.coord.redirs.total", "Total coordinator redirects")
	MemoryProcessesUsed = sensor.New[int64]("riak.memory", "Memory used by Erlang processes, in bytes")
	SysProcessCount     = sensor.New[int64]("riak.sys.processes", "Erlang process count")
	PBCConnects         = sensor.New[int64]("riak.pbc.connects", "Protocol buffer connections in the last minute")
	PBCActive           = sensor.New[int64]("riak.pbc.active", "Active protocol buffer connections")

	RingMembers = sensor.New[[]string]("ring_members", "Nodes in the ring")

	NodeGetFSMTimeMean   = sensor.New[int64]("riak.node_get_fsm_time_mean", "Mean get FSM time, microseconds")
	NodeGetFSMTimeMedian = sensor.New[int64]("riak.node_get_fsm_time_median", "Median get FSM time, microseconds")
	NodeGetFSMTime95     = sensor.New[int64]("riak.node_get_fsm_time_95", "95th percentile get FSM time, microseconds")
	NodeGetFSMTime99     = sensor.New[int64]("riak.node_get_fsm_time_99", "99th percentile get FSM time, microseconds")
	NodeGetFSMTime100    = sensor.New[int64]("riak.node_get_fsm_time_100", "Maximum get FSM time, microseconds")
	NodePutFSMTimeMean   = sensor.New[int64]("riak.node_put_fsm_time_mean", "Mean put FSM time, microseconds")
	NodePutFSMTimeMedian = sensor.New[int64]("riak.node_put_fsm_time_median", "Median put FSM time, microseconds")
	NodePutFSMTime95     = sensor.New[int64]("riak.node_put_fsm_time_95", "95th percentile put FSM time, microseconds")
	NodePutFSMTime99     = sensor.New[int64]("riak.node_put_fsm_time_99", "99th percentile put FSM time, microseconds")
	NodePutFSMTime100    = sensor.New[int64]("riak.node_put_fsm_time_100", "Maximum put FSM time, microseconds")

	NodeGetsPerSecond = sensor.New[float64]("riak.node.gets.perSec", "Gets per second, from the running total")
	NodePutsPerSecond = sensor.New[float64]("riak.node.puts.perSec", "Puts per second, from the running total")

	NodeName         = sensor.New[string]("riak.node", "Erlang node name")
	HasJoinedCluster = sensor.New[bool]("riak.node.riakNodeHasJoinedCluster", "Whether the node has joined a cluster")
	AccessibleURI    = sensor.New[string]("riak.stats.uri", "Externally reachable stats endpoint")

	WebPort              = sensor.New[int]("riak.webPort", "Riak HTTP port")
	PBPort               = sensor.New[int]("riak.pbPort", "Riak protocol buffers port")
	HandoffListenerPort  = sensor.New[int]("handoffListenerPort", "Handoff listener port")
	EPMDListenerPort     = sensor.New[int]("epmdListenerPort", "Erlang port mapper daemon port")
	ErlangPortRangeStart = sensor.New[int]("erlangPortRangeStart", "Start of the Erlang inter-node port range")
	ErlangPortRangeEnd   = sensor.New[int]("erlangPortRangeEnd", "End of the Erlang inter-node port range")
	SearchSolrPort       = sensor.New[int]("search.solr.port", "Solr search port")
	SearchSolrJMXPort    = sensor.New[int]("search.solr.jmx_port", "Solr JMX port")
)

// statsField binds an integer sensor to a field of the /stats document.
type statsField struct {
	sensor sensor.Sensor[int64]
	field  string
	period time.Duration
}

//nolint:gochecknoglobals // poll table
var (
	fastStats = []statsField{
		{NodeGets, "node_gets", 0},
		{NodeGetsTotal, "node_gets_total", 0},
		{NodePuts, "node_puts", 0},
		{NodePutsTotal, "node_puts_total", 0},
		{VnodeGets, "vnode_gets", 0},
		{VnodeGetsTotal, "vnode_gets_total", 0},
		{VnodePuts, "vnode_puts", 0},
		{VnodePutsTotal, "vnode_puts_total", 0},
		{ReadRepairsTotal, "read_repairs_total", 0},
		{CoordRedirsTotal, "coord_redirs_total", 0},
		{MemoryProcessesUsed, "memory_processes_used", 0},
		{SysProcessCount, "sys_process_count", 0},
		{PBCConnects, "pbc_connects", 0},
		{PBCActive, "pbc_active", 0},
	}

	oneMinuteSensors = []sensor.Sensor[int64]{
		NodeGetFSMTimeMean,
		NodeGetFSMTimeMedian,
		NodeGetFSMTime95,
		NodeGetFSMTime99,
		NodeGetFSMTime100,
		NodePutFSMTimeMean,
		NodePutFSMTimeMedian,
		NodePutFSMTime95,
		NodePutFSMTime99,
		NodePutFSMTime100,
	}
)

// statsTable returns every integer stats poll. The one-minute sensors are
// named after their /stats field.
func statsTable() []statsField {
	table := make([]statsField, 0, len(fastStats)+len(oneMinuteSensors))
	table = append(table, fastStats...)

	for _, s := range oneMinuteSensors {
		table = append(table, statsField{
			sensor: s,
			field:  strings.TrimPrefix(s.Name(), sensorPrefix),
			period: SlowStatsPeriod,
		})
	}

	return table
}
