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
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errExit = errors.New("exit status 1")

func newTestCLIDriver(t *testing.T) (*CLIDriver, *MockCommandRunner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	runner := NewMockCommandRunner(ctrl)

	cfg := &Config{ID: "riak-1", Host: "10.0.0.5"}
	require.NoError(t, cfg.Validate())

	return NewCLIDriver(cfg, runner, nil), runner
}

func TestCLIDriver_JoinPlansAndCommits(t *testing.T) {
	d, runner := newTestCLIDriver(t)
	ctx := context.Background()

	gomock.InOrder(
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "join", "riak@10.0.0.6").Return([]byte("Success"), nil),
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "plan").Return([]byte("planned"), nil),
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "commit").Return([]byte("committed"), nil),
	)

	require.NoError(t, d.JoinCluster(ctx, "riak@10.0.0.6"))
}

func TestCLIDriver_FailedPlanSkipsCommit(t *testing.T) {
	d, runner := newTestCLIDriver(t)
	ctx := context.Background()

	runner.EXPECT().Run(ctx, "riak-admin", "cluster", "leave").Return(nil, nil)
	runner.EXPECT().Run(ctx, "riak-admin", "cluster", "plan").Return([]byte("Error: ring not ready\n"), errExit)

	err := d.LeaveCluster(ctx)
	require.ErrorIs(t, err, ErrCommandFailed)
	require.ErrorIs(t, err, errExit)
	assert.Contains(t, err.Error(), "ring not ready")
}

func TestCLIDriver_RecoverFailedNode(t *testing.T) {
	d, runner := newTestCLIDriver(t)
	ctx := context.Background()

	gomock.InOrder(
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "force-replace", "riak@10.0.0.9", "riak@10.0.0.5").Return(nil, nil),
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "plan").Return(nil, nil),
		runner.EXPECT().Run(ctx, "riak-admin", "cluster", "commit").Return(nil, nil),
	)

	require.NoError(t, d.RecoverFailedNode(ctx, "riak@10.0.0.9"))
}

func TestCLIDriver_RejectsUnsafeArguments(t *testing.T) {
	d, _ := newTestCLIDriver(t)
	ctx := context.Background()

	require.ErrorIs(t, d.JoinCluster(ctx, "riak@a; rm -rf /"), errInvalidArgument)
	require.ErrorIs(t, d.RemoveNode(ctx, ""), errInvalidArgument)
	require.ErrorIs(t, d.BucketTypeActivate(ctx, "maps $(id)"), errInvalidArgument)
}

func TestCLIDriver_BucketTypes(t *testing.T) {
	d, runner := newTestCLIDriver(t)
	ctx := context.Background()

	runner.EXPECT().Run(ctx, "riak-admin", "bucket-type", "create", "maps", `{"props":{"datatype":"map"}}`).Return(nil, nil)
	runner.EXPECT().Run(ctx, "riak-admin", "bucket-type", "list").Return([]byte("default (active)\nmaps (not active)\n\n"), nil)
	runner.EXPECT().Run(ctx, "riak-admin", "bucket-type", "status", "maps").Return([]byte("maps is not active\n  datatype: map\n"), nil)
	runner.EXPECT().Run(ctx, "riak-admin", "bucket-type", "activate", "maps").Return(nil, nil)
	runner.EXPECT().Run(ctx, "riak-admin", "bucket-type", "update", "maps", `{"props":{"n_val":5}}`).Return(nil, nil)

	require.NoError(t, d.BucketTypeCreate(ctx, "maps", `{"props":{"datatype":"map"}}`))

	types, err := d.BucketTypeList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default (active)", "maps (not active)"}, types)

	status, err := d.BucketTypeStatus(ctx, "maps")
	require.NoError(t, err)
	assert.Equal(t, []string{"maps is not active", "datatype: map"}, status)

	require.NoError(t, d.BucketTypeActivate(ctx, "maps"))
	require.NoError(t, d.BucketTypeUpdate(ctx, "maps", `{"props":{"n_val":5}}`))
}

func TestCLIDriver_ProcessControl(t *testing.T) {
	d, runner := newTestCLIDriver(t)
	ctx := context.Background()

	runner.EXPECT().Run(ctx, "riak", "start").Return(nil, nil)
	runner.EXPECT().Run(ctx, "riak", "ping").Return([]byte("pong\n"), nil)
	runner.EXPECT().Run(ctx, "riak", "ping").Return([]byte("Node 'riak@10.0.0.5' not responding to pings."), errExit)
	runner.EXPECT().Run(ctx, "riak", "stop").Return([]byte("ok"), nil)

	require.NoError(t, d.Start(ctx))

	up, err := d.IsRunning(ctx)
	require.NoError(t, err)
	assert.True(t, up)

	up, err = d.IsRunning(ctx)
	require.Error(t, err)
	assert.False(t, up)

	require.NoError(t, d.Stop(ctx))
}

func TestCLIDriver_OSMajorVersion(t *testing.T) {
	d, _ := newTestCLIDriver(t)

	d.hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Platform: "centos", PlatformVersion: "7.9.2009"}, nil
	}

	v, err := d.OSMajorVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	d.hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{}, nil
	}

	_, err = d.OSMajorVersion(context.Background())
	require.ErrorIs(t, err, errNoOSVersion)
}

func TestCLIDriver_CustomBinaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := NewMockCommandRunner(ctrl)

	cfg := &Config{ID: "riak-1", Host: "10.0.0.5", RiakBinary: "/usr/sbin/riak", RiakAdminBinary: "/usr/sbin/riak-admin"}
	d := NewCLIDriver(cfg, runner, nil)

	runner.EXPECT().Run(gomock.Any(), "/usr/sbin/riak-admin", "bucket-type", "list").Return(nil, nil)

	types, err := d.BucketTypeList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, types)
}
