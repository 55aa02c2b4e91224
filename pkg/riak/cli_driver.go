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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/carverauto/nodewarden/pkg/logger"
)

const (
	defaultRiakBinary      = "riak"
	defaultRiakAdminBinary = "riak-admin"
	maxArgLength           = 255
)

var (
	// node names look like riak@10.0.0.5; bucket type names are plain identifiers.
	validArgument = regexp.MustCompile(`^[a-zA-Z0-9\-_.@]+$`)

	errInvalidArgument = errors.New("invalid argument")
	errNoOSVersion     = errors.New("host reports no platform version")
)

// ExecRunner runs commands on the local host.
type ExecRunner struct{}

// Run executes name with args and returns combined stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CLIDriver drives a node installed on the local host through the riak and
// riak-admin command line tools. Cluster topology changes are serialised.
type CLIDriver struct {
	runner    CommandRunner
	riak      string
	riakAdmin string
	nodeName  string
	logger    logger.Logger
	hostInfo  func(ctx context.Context) (*host.InfoStat, error)

	topologyMu sync.Mutex
}

// NewCLIDriver builds a driver for the node described by cfg. A nil runner
// executes commands locally.
func NewCLIDriver(cfg *Config, runner CommandRunner, log logger.Logger) *CLIDriver {
	if runner == nil {
		runner = ExecRunner{}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	riak := cfg.RiakBinary
	if riak == "" {
		riak = defaultRiakBinary
	}

	riakAdmin := cfg.RiakAdminBinary
	if riakAdmin == "" {
		riakAdmin = defaultRiakAdminBinary
	}

	return &CLIDriver{
		runner:    runner,
		riak:      riak,
		riakAdmin: riakAdmin,
		nodeName:  cfg.NodeName,
		logger:    log,
		hostInfo:  host.InfoWithContext,
	}
}

func validateArgument(kind, v string) error {
	if v == "" || len(v) > maxArgLength || !validArgument.MatchString(v) {
		return fmt.Errorf("%w: %s %q", errInvalidArgument, kind, v)
	}

	return nil
}

func (d *CLIDriver) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	d.logger.Debug().Str("command", name).Strs("args", args).Msg("Running riak command")

	out, err := d.runner.Run(ctx, name, args...)
	if err != nil {
		return out, fmt.Errorf("%w: %s %s: %w: %s",
			ErrCommandFailed, name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return out, nil
}

// changeTopology stages a cluster change, then plans and commits it.
func (d *CLIDriver) changeTopology(ctx context.Context, args ...string) error {
	d.topologyMu.Lock()
	defer d.topologyMu.Unlock()

	if _, err := d.run(ctx, d.riakAdmin, append([]string{"cluster"}, args...)...); err != nil {
		return err
	}

	if _, err := d.run(ctx, d.riakAdmin, "cluster", "plan"); err != nil {
		return err
	}

	_, err := d.run(ctx, d.riakAdmin, "cluster", "commit")

	return err
}

// Start runs "riak start".
func (d *CLIDriver) Start(ctx context.Context) error {
	_, err := d.run(ctx, d.riak, "start")

	return err
}

// Stop runs "riak stop".
func (d *CLIDriver) Stop(ctx context.Context) error {
	_, err := d.run(ctx, d.riak, "stop")

	return err
}

// IsRunning pings the node; anything but "pong" means it is down.
func (d *CLIDriver) IsRunning(ctx context.Context) (bool, error) {
	out, err := d.run(ctx, d.riak, "ping")
	if err != nil {
		return false, err
	}

	return strings.Contains(string(out), "pong"), nil
}

// JoinCluster stages a join to nodeName and commits the plan.
func (d *CLIDriver) JoinCluster(ctx context.Context, nodeName string) error {
	if err := validateArgument("node name", nodeName); err != nil {
		return err
	}

	return d.changeTopology(ctx, "join", nodeName)
}

// LeaveCluster stages this node leaving the cluster and commits the plan.
func (d *CLIDriver) LeaveCluster(ctx context.Context) error {
	return d.changeTopology(ctx, "leave")
}

// RemoveNode force-removes nodeName from the cluster and commits the plan.
func (d *CLIDriver) RemoveNode(ctx context.Context, nodeName string) error {
	if err := validateArgument("node name", nodeName); err != nil {
		return err
	}

	return d.changeTopology(ctx, "force-remove", nodeName)
}

// RecoverFailedNode hands the partitions of the failed node to this node.
func (d *CLIDriver) RecoverFailedNode(ctx context.Context, nodeName string) error {
	if err := validateArgument("node name", nodeName); err != nil {
		return err
	}

	if err := validateArgument("own node name", d.nodeName); err != nil {
		return err
	}

	return d.changeTopology(ctx, "force-replace", nodeName, d.nodeName)
}

// BucketTypeCreate runs "riak-admin bucket-type create".
func (d *CLIDriver) BucketTypeCreate(ctx context.Context, name, properties string) error {
	if err := validateArgument("bucket type", name); err != nil {
		return err
	}

	_, err := d.run(ctx, d.riakAdmin, "bucket-type", "create", name, properties)

	return err
}

// BucketTypeList runs "riak-admin bucket-type list" and returns one entry per line.
func (d *CLIDriver) BucketTypeList(ctx context.Context) ([]string, error) {
	out, err := d.run(ctx, d.riakAdmin, "bucket-type", "list")
	if err != nil {
		return nil, err
	}

	return lines(out), nil
}

// BucketTypeStatus runs "riak-admin bucket-type status" and returns its output lines.
func (d *CLIDriver) BucketTypeStatus(ctx context.Context, name string) ([]string, error) {
	if err := validateArgument("bucket type", name); err != nil {
		return nil, err
	}

	out, err := d.run(ctx, d.riakAdmin, "bucket-type", "status", name)
	if err != nil {
		return nil, err
	}

	return lines(out), nil
}

// BucketTypeUpdate runs "riak-admin bucket-type update".
func (d *CLIDriver) BucketTypeUpdate(ctx context.Context, name, properties string) error {
	if err := validateArgument("bucket type", name); err != nil {
		return err
	}

	_, err := d.run(ctx, d.riakAdmin, "bucket-type", "update", name, properties)

	return err
}

// BucketTypeActivate runs "riak-admin bucket-type activate".
func (d *CLIDriver) BucketTypeActivate(ctx context.Context, name string) error {
	if err := validateArgument("bucket type", name); err != nil {
		return err
	}

	_, err := d.run(ctx, d.riakAdmin, "bucket-type", "activate", name)

	return err
}

// OSMajorVersion returns the leading component of the host platform
// version, e.g. "7" on CentOS 7.9.
func (d *CLIDriver) OSMajorVersion(ctx context.Context) (string, error) {
	info, err := d.hostInfo(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read host info: %w", err)
	}

	if info.PlatformVersion == "" {
		return "", errNoOSVersion
	}

	major, _, _ := strings.Cut(info.PlatformVersion, ".")

	return major, nil
}

func lines(out []byte) []string {
	var result []string

	for _, line := range bytes.Split(out, []byte("\n")) {
		if trimmed := strings.TrimSpace(string(line)); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
