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

// Package riak models a Riak KV node as a managed entity: its sensor
// catalog, the /stats feed, the cluster effectors and the driver contract.
package riak

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/nodewarden/pkg/enricher"
	"github.com/carverauto/nodewarden/pkg/entity"
	"github.com/carverauto/nodewarden/pkg/feed"
	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/models"
	"github.com/carverauto/nodewarden/pkg/provisioning"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

const (
	// EntityType names Riak nodes in logs, metrics and events.
	EntityType = "riak.node"

	majorVersionWidth = 3
	tracerName        = "github.com/carverauto/nodewarden/pkg/riak"
)

// NodeOptions wires a Node to its collaborators.
type NodeOptions struct {
	Config Config
	Driver Driver
	Store  *sensor.Store
	Logger logger.Logger
	// Resolver defaults to one built from Config.AddressMappings.
	Resolver   AddressResolver
	HTTPClient *http.Client
	Clock      feed.Clock
	Gate       feed.Gate
}

// Node is a Riak KV node bound to the process that runs it.
type Node struct {
	*entity.Process

	cfg        Config
	bag        sensor.Bag
	driver     Driver
	resolver   AddressResolver
	httpClient *http.Client
	clock      feed.Clock
	gate       feed.Gate
	logger     logger.Logger
	tracer     trace.Tracer
	advisor    provisioning.Advisor

	feedMu     sync.Mutex
	statsFeed  feed.Feed
	rates      []*enricher.TimeWeightedDelta
	accessible string
}

// NewNode builds a node in the CREATED state. Port sensors are populated
// from configuration immediately; a configuration whose required open ports
// cannot be computed is rejected with ErrProvisioning.
func NewNode(opts NodeOptions) (*Node, error) {
	if opts.Driver == nil {
		return nil, ErrNoDriver
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewResolver(opts.Config.AddressMappings)
	}

	n := &Node{
		cfg:        opts.Config,
		bag:        opts.Config.Bag(),
		driver:     opts.Driver,
		resolver:   resolver,
		httpClient: opts.HTTPClient,
		clock:      opts.Clock,
		gate:       opts.Gate,
		tracer:     otel.Tracer(tracerName),
	}

	proc, err := entity.NewProcess(entity.ProcessConfig{
		ID:              opts.Config.ID,
		Type:            EntityType,
		Driver:          opts.Driver,
		Hooks:           n,
		Store:           opts.Store,
		Logger:          opts.Logger,
		ServiceUpPeriod: opts.Config.ServiceUpPeriod.Or(entity.DefaultServiceUpPeriod),
		Gate:            opts.Gate,
		Clock:           opts.Clock,
	})
	if err != nil {
		return nil, err
	}

	n.Process = proc
	n.logger = proc.Logger()

	store := proc.Store()
	sensor.Set(store, WebPort, n.port(WebPortConfig))
	sensor.Set(store, PBPort, n.port(PBPortConfig))
	sensor.Set(store, HandoffListenerPort, n.port(HandoffListenerPortConfig))
	sensor.Set(store, EPMDListenerPort, n.port(EPMDListenerPortConfig))
	sensor.Set(store, ErlangPortRangeStart, n.port(ErlangPortRangeStartConfig))
	sensor.Set(store, ErlangPortRangeEnd, n.port(ErlangPortRangeEndConfig))
	sensor.Set(store, SearchSolrPort, n.port(SearchSolrPortConfig))
	sensor.Set(store, SearchSolrJMXPort, n.port(SearchSolrJMXPortConfig))
	sensor.Set(store, NodeName, opts.Config.NodeName)
	sensor.Set(store, HasJoinedCluster, false)

	if _, err := n.RequiredOpenPorts(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvisioning, err)
	}

	return n, nil
}

func (n *Node) port(key sensor.ConfigKey[models.PortRange]) int {
	r, _ := sensor.Resolve(n.bag, key)

	p, err := r.First()
	if err != nil {
		return 0
	}

	return p
}

// ValidateConfig requires both configuration templates to be present and
// resolvable. Local file templates must exist.
func (n *Node) ValidateConfig() error {
	for _, key := range []sensor.ConfigKey[string]{VMArgsTemplateURL, AppConfigTemplateURL} {
		raw, ok := sensor.Resolve(n.bag, key)
		if !ok || raw == "" {
			return fmt.Errorf("%w: %s", entity.ErrMissingConfig, key.Name())
		}

		if err := checkTemplateURL(raw); err != nil {
			return fmt.Errorf("%w: %s: %w", entity.ErrMissingConfig, key.Name(), err)
		}
	}

	return nil
}

func checkTemplateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	switch u.Scheme {
	case "file":
		_, err := os.Stat(u.Path)

		return err
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%q has no host", raw)
		}

		return nil
	default:
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
}

// ConnectSensors resolves the externally reachable stats address and starts
// the stats feed and the derived rate sensors.
func (n *Node) ConnectSensors(ctx context.Context) error {
	n.feedMu.Lock()
	defer n.feedMu.Unlock()

	if n.statsFeed != nil {
		return nil
	}

	addr, err := n.resolver.Accessible(ctx, n.cfg.Host, n.WebPort())
	if err != nil {
		return fmt.Errorf("failed to resolve accessible address: %w", err)
	}

	uri := fmt.Sprintf("http://%s/stats", addr)

	f, err := feed.NewHTTPFeed(feed.HTTPFeedConfig{
		Name:    n.ID() + ".stats",
		BaseURI: uri,
		Period:  n.cfg.StatsPeriod.Or(StatsPeriod),
		Timeout: n.cfg.ProbeTimeout.Or(feed.DefaultTimeout),
		Client:  n.httpClient,
		Store:   n.Store(),
		Logger:  n.logger,
		Clock:   n.clock,
		Gate:    n.gate,
	}, statsPolls()...)
	if err != nil {
		return err
	}

	n.rates = []*enricher.TimeWeightedDelta{
		enricher.NewTimeWeightedDelta(n.Store(), NodeGetsTotal, NodeGetsPerSecond, 0),
		enricher.NewTimeWeightedDelta(n.Store(), NodePutsTotal, NodePutsPerSecond, 0),
	}
	for _, r := range n.rates {
		r.Start()
	}

	if err := f.Start(context.WithoutCancel(ctx)); err != nil {
		n.stopRates()

		return err
	}

	n.statsFeed = f
	n.accessible = addr
	sensor.Set(n.Store(), AccessibleURI, uri)

	n.logger.Info().Str("uri", uri).Msg("Connected stats feed")

	return nil
}

// DisconnectSensors stops the stats feed, if one is running.
func (n *Node) DisconnectSensors(ctx context.Context) error {
	n.feedMu.Lock()
	defer n.feedMu.Unlock()

	n.stopRates()

	if n.statsFeed == nil {
		return nil
	}

	err := n.statsFeed.Stop(ctx)
	n.statsFeed = nil

	return err
}

func (n *Node) stopRates() {
	for _, r := range n.rates {
		r.Stop()
	}

	n.rates = nil
}

func statsPolls() []feed.Poll {
	table := statsTable()
	polls := make([]feed.Poll, 0, len(table)+1)

	for _, s := range table {
		polls = append(polls, feed.HTTPPoll(s.sensor, feed.JSONField[int64](s.field), FailureValue, feed.WithPeriod(s.period)))
	}

	polls = append(polls, feed.HTTPPoll(RingMembers, feed.JSONStrings("ring_members"), []string{}))

	return polls
}

// AccessibleAddress returns the host:port the stats feed targets during the
// current activation.
func (n *Node) AccessibleAddress() string {
	n.feedMu.Lock()
	defer n.feedMu.Unlock()

	return n.accessible
}

func (n *Node) effector(ctx context.Context, name string, call func(context.Context) error, attrs ...attribute.KeyValue) error {
	attrs = append(attrs, attribute.String("entity.id", n.ID()))

	ctx, span := n.tracer.Start(ctx, "riak."+name, trace.WithAttributes(attrs...))
	defer span.End()

	if err := n.RequireRunning(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "entity not running")

		return err
	}

	if err := call(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
		n.logger.Error().Err(err).Str("effector", name).Msg("Effector failed")

		return err
	}

	span.SetStatus(codes.Ok, name)

	return nil
}

// JoinCluster joins the cluster that nodeName belongs to.
func (n *Node) JoinCluster(ctx context.Context, nodeName string) error {
	return n.effector(ctx, "joinCluster", func(ctx context.Context) error {
		if err := n.driver.JoinCluster(ctx, nodeName); err != nil {
			return err
		}

		sensor.Set(n.Store(), HasJoinedCluster, true)

		return nil
	}, attribute.String("riak.peer", nodeName))
}

// LeaveCluster removes this node from its cluster.
func (n *Node) LeaveCluster(ctx context.Context) error {
	return n.effector(ctx, "leaveCluster", func(ctx context.Context) error {
		if err := n.driver.LeaveCluster(ctx); err != nil {
			return err
		}

		sensor.Set(n.Store(), HasJoinedCluster, false)

		return nil
	})
}

// RemoveNode forcibly removes nodeName from the cluster.
func (n *Node) RemoveNode(ctx context.Context, nodeName string) error {
	return n.effector(ctx, "removeNode", func(ctx context.Context) error {
		return n.driver.RemoveNode(ctx, nodeName)
	}, attribute.String("riak.peer", nodeName))
}

// BucketTypeCreate creates bucket type name with the given JSON properties.
func (n *Node) BucketTypeCreate(ctx context.Context, name, properties string) error {
	return n.effector(ctx, "bucketTypeCreate", func(ctx context.Context) error {
		return n.driver.BucketTypeCreate(ctx, name, properties)
	}, attribute.String("riak.bucket_type", name))
}

// BucketTypeList lists the bucket types known to the cluster.
func (n *Node) BucketTypeList(ctx context.Context) ([]string, error) {
	var out []string

	err := n.effector(ctx, "bucketTypeList", func(ctx context.Context) error {
		var err error
		out, err = n.driver.BucketTypeList(ctx)

		return err
	})

	return out, err
}

// BucketTypeStatus returns the status lines of bucket type name.
func (n *Node) BucketTypeStatus(ctx context.Context, name string) ([]string, error) {
	var out []string

	err := n.effector(ctx, "bucketTypeStatus", func(ctx context.Context) error {
		var err error
		out, err = n.driver.BucketTypeStatus(ctx, name)

		return err
	}, attribute.String("riak.bucket_type", name))

	return out, err
}

// BucketTypeUpdate replaces the properties of bucket type name.
func (n *Node) BucketTypeUpdate(ctx context.Context, name, properties string) error {
	return n.effector(ctx, "bucketTypeUpdate", func(ctx context.Context) error {
		return n.driver.BucketTypeUpdate(ctx, name, properties)
	}, attribute.String("riak.bucket_type", name))
}

// BucketTypeActivate activates bucket type name cluster-wide.
func (n *Node) BucketTypeActivate(ctx context.Context, name string) error {
	return n.effector(ctx, "bucketTypeActivate", func(ctx context.Context) error {
		return n.driver.BucketTypeActivate(ctx, name)
	}, attribute.String("riak.bucket_type", name))
}

// RecoverFailedNode replaces the failed nodeName with this node.
func (n *Node) RecoverFailedNode(ctx context.Context, nodeName string) error {
	return n.effector(ctx, "recoverFailedNode", func(ctx context.Context) error {
		return n.driver.RecoverFailedNode(ctx, nodeName)
	}, attribute.String("riak.peer", nodeName))
}

// WebPort returns the HTTP API port.
func (n *Node) WebPort() int {
	return sensor.GetOrDefault(n.Store(), WebPort, 0)
}

// PBPort returns the protocol buffers port.
func (n *Node) PBPort() int {
	return sensor.GetOrDefault(n.Store(), PBPort, 0)
}

// HandoffListenerPort returns the handoff listener port.
func (n *Node) HandoffListenerPort() int {
	return sensor.GetOrDefault(n.Store(), HandoffListenerPort, 0)
}

// EPMDListenerPort returns the Erlang port mapper port.
func (n *Node) EPMDListenerPort() int {
	return sensor.GetOrDefault(n.Store(), EPMDListenerPort, 0)
}

// ErlangPortRangeStart returns the exclusive lower bound of the Erlang inter-node range.
func (n *Node) ErlangPortRangeStart() int {
	return sensor.GetOrDefault(n.Store(), ErlangPortRangeStart, 0)
}

// ErlangPortRangeEnd returns the exclusive upper bound of the Erlang inter-node range.
func (n *Node) ErlangPortRangeEnd() int {
	return sensor.GetOrDefault(n.Store(), ErlangPortRangeEnd, 0)
}

// SearchSolrPort returns the Solr search port.
func (n *Node) SearchSolrPort() int {
	return sensor.GetOrDefault(n.Store(), SearchSolrPort, 0)
}

// SearchSolrJMXPort returns the Solr JMX port.
func (n *Node) SearchSolrJMXPort() int {
	return sensor.GetOrDefault(n.Store(), SearchSolrJMXPort, 0)
}

// FullVersion returns the configured Riak version.
func (n *Node) FullVersion() string {
	v, _ := sensor.Resolve(n.bag, SuggestedVersion)

	return v
}

// MajorVersion returns the major.minor prefix of the configured version.
func (n *Node) MajorVersion() (string, error) {
	return MajorVersion(n.FullVersion())
}

// MajorVersion returns the fixed-width major.minor prefix of a version such
// as "2.1.4". Riak versions keep single-digit major and minor numbers.
func MajorVersion(full string) (string, error) {
	if len(full) < majorVersionWidth {
		return "", fmt.Errorf("%w: %q is shorter than %d characters", ErrMalformedVersion, full, majorVersionWidth)
	}

	return full[:majorVersionWidth], nil
}

// OSMajorVersion asks the driver for the host's OS major version.
func (n *Node) OSMajorVersion(ctx context.Context) (string, error) {
	return n.driver.OSMajorVersion(ctx)
}

// IsPackageDownloadURLProvided reports whether any distribution package URL
// was configured explicitly.
func (n *Node) IsPackageDownloadURLProvided() bool {
	return sensor.IsExplicit(n.bag, DownloadURLRHELCentOS) ||
		sensor.IsExplicit(n.bag, DownloadURLUbuntu) ||
		sensor.IsExplicit(n.bag, DownloadURLDebian)
}

// ProvisioningFlags returns the configured flags with a 64-bit OS forced.
func (n *Node) ProvisioningFlags() map[string]any {
	return n.advisor.Flags(n.cfg.ProvisioningFlags)
}

// RequiredOpenPorts returns the configured open ports, the node's service
// ports and the Erlang inter-node range, bounds excluded.
func (n *Node) RequiredOpenPorts() ([]int, error) {
	inherited := make([]int, 0, len(n.cfg.OpenPorts)+6)
	inherited = append(inherited, n.cfg.OpenPorts...)

	for _, p := range []int{
		n.WebPort(), n.PBPort(), n.HandoffListenerPort(),
		n.EPMDListenerPort(), n.SearchSolrPort(), n.SearchSolrJMXPort(),
	} {
		if p > 0 {
			inherited = append(inherited, p)
		}
	}

	return n.advisor.RequiredOpenPorts(inherited, n.ErlangPortRangeStart(), n.ErlangPortRangeEnd())
}
