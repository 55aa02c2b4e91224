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

package entity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

var (
	errDriver   = errors.New("riak failed to start")
	errTemplate = errors.New("vm.args template not set")
)

type recorder struct {
	mu          sync.Mutex
	transitions []Transition
}

func (r *recorder) listen(t Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transitions = append(r.transitions, t)
}

func (r *recorder) states() []State {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]State, 0, len(r.transitions))
	for _, t := range r.transitions {
		out = append(out, t.To)
	}

	return out
}

func newTestProcess(t *testing.T, driver ProcessDriver, hooks Hooks) (*Process, *recorder) {
	t.Helper()

	p, err := NewProcess(ProcessConfig{
		ID:              "riak-1",
		Type:            "riak.node",
		Driver:          driver,
		Hooks:           hooks,
		Logger:          logger.NewTestLogger(),
		ServiceUpPeriod: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	rec := &recorder{}
	p.AddTransitionListener(rec.listen)

	return p, rec
}

func TestNewProcess_RequiresDriver(t *testing.T) {
	_, err := NewProcess(ProcessConfig{ID: "x"})
	require.ErrorIs(t, err, ErrNoDriver)
}

func TestProcess_InitFailsFastOnMissingConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(errTemplate)

	p, rec := newTestProcess(t, driver, hooks)

	err := p.Init()
	require.ErrorIs(t, err, ErrMissingConfig)
	require.ErrorIs(t, err, errTemplate)
	assert.Equal(t, StateCreated, p.State())
	assert.Empty(t, rec.states())

	require.ErrorIs(t, p.Start(context.Background()), ErrInvalidState)
}

func TestProcess_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(nil)
	driver.EXPECT().IsRunning(gomock.Any()).Return(true, nil).AnyTimes()

	gomock.InOrder(
		driver.EXPECT().Start(gomock.Any()).Return(nil),
		hooks.EXPECT().ConnectSensors(gomock.Any()).Return(nil),
		hooks.EXPECT().DisconnectSensors(gomock.Any()).Return(nil),
		driver.EXPECT().Stop(gomock.Any()).Return(nil),
	)

	p, rec := newTestProcess(t, driver, hooks)
	ctx := context.Background()

	require.NoError(t, p.Init())
	require.NoError(t, p.Start(ctx))
	assert.Equal(t, StateRunning, p.State())
	require.NoError(t, p.RequireRunning())

	require.Eventually(t, func() bool {
		return sensor.GetOrDefault(p.Store(), ServiceUp, false)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Stop(ctx))
	require.NoError(t, p.Stop(ctx), "second stop is a no-op")

	assert.Equal(t, StateStopped, p.State())
	assert.False(t, sensor.GetOrDefault(p.Store(), ServiceUp, true))
	assert.Equal(t, StateStopped.String(), sensor.GetOrDefault(p.Store(), ServiceState, ""))
	assert.Equal(t, []State{
		StateInitialized, StateStarting, StateRunning, StateStopping, StateStopped,
	}, rec.states())

	require.ErrorIs(t, p.RequireRunning(), ErrInvalidState)
}

func TestProcess_DriverStartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(nil)
	driver.EXPECT().Start(gomock.Any()).Return(errDriver)

	p, rec := newTestProcess(t, driver, hooks)

	require.NoError(t, p.Init())

	err := p.Start(context.Background())
	require.ErrorIs(t, err, ErrEntityFailed)
	require.ErrorIs(t, err, errDriver)
	assert.Equal(t, StateFailed, p.State())

	states := rec.states()
	assert.Equal(t, StateFailed, states[len(states)-1])

	rec.mu.Lock()
	require.ErrorIs(t, rec.transitions[len(rec.transitions)-1].Err, errDriver)
	rec.mu.Unlock()

	// FAILED is absorbing.
	require.ErrorIs(t, p.Start(context.Background()), ErrInvalidState)
	require.ErrorIs(t, p.Stop(context.Background()), ErrInvalidState)
}

func TestProcess_ConnectFailureTearsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(nil)
	driver.EXPECT().Start(gomock.Any()).Return(nil)
	hooks.EXPECT().ConnectSensors(gomock.Any()).Return(errTemplate)
	hooks.EXPECT().DisconnectSensors(gomock.Any()).Return(nil)

	p, _ := newTestProcess(t, driver, hooks)

	require.NoError(t, p.Init())
	require.ErrorIs(t, p.Start(context.Background()), ErrEntityFailed)
	assert.Equal(t, StateFailed, p.State())
}

func TestProcess_DriverStopFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(nil)
	hooks.EXPECT().ConnectSensors(gomock.Any()).Return(nil)
	hooks.EXPECT().DisconnectSensors(gomock.Any()).Return(nil)
	driver.EXPECT().IsRunning(gomock.Any()).Return(true, nil).AnyTimes()
	driver.EXPECT().Start(gomock.Any()).Return(nil)
	driver.EXPECT().Stop(gomock.Any()).Return(errDriver)

	p, _ := newTestProcess(t, driver, hooks)

	require.NoError(t, p.Init())
	require.NoError(t, p.Start(context.Background()))

	err := p.Stop(context.Background())
	require.ErrorIs(t, err, errDriver)
	assert.Equal(t, StateFailed, p.State())
}

func TestProcess_LivenessFailureKeepsRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)

	driver.EXPECT().Start(gomock.Any()).Return(nil)
	driver.EXPECT().Stop(gomock.Any()).Return(nil)
	driver.EXPECT().IsRunning(gomock.Any()).Return(false, errDriver).AnyTimes()

	p, _ := newTestProcess(t, driver, nil)

	require.NoError(t, p.Init())
	require.NoError(t, p.Start(context.Background()))

	require.Eventually(t, func() bool {
		up, ok := sensor.Get(p.Store(), ServiceUp)

		return ok && !up
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, StateRunning, p.State())
	require.NoError(t, p.Stop(context.Background()))
}

func TestProcess_Restart(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)
	hooks := NewMockHooks(ctrl)

	hooks.EXPECT().ValidateConfig().Return(nil)
	hooks.EXPECT().ConnectSensors(gomock.Any()).Return(nil).Times(2)
	hooks.EXPECT().DisconnectSensors(gomock.Any()).Return(nil).Times(2)
	driver.EXPECT().Start(gomock.Any()).Return(nil).Times(2)
	driver.EXPECT().Stop(gomock.Any()).Return(nil).Times(2)
	driver.EXPECT().IsRunning(gomock.Any()).Return(true, nil).AnyTimes()

	p, _ := newTestProcess(t, driver, hooks)
	ctx := context.Background()

	require.NoError(t, p.Init())
	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Restart(ctx))
	assert.Equal(t, StateRunning, p.State())
	require.NoError(t, p.Stop(ctx))
}

func TestProcess_StopBeforeStartIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := NewMockProcessDriver(ctrl)

	p, rec := newTestProcess(t, driver, nil)

	require.NoError(t, p.Stop(context.Background()))
	assert.Equal(t, StateCreated, p.State())
	assert.Empty(t, rec.states())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "FAILED", StateFailed.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
