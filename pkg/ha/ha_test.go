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

package ha

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/nodewarden/pkg/natsutil/natstest"
)

func TestStandalone(t *testing.T) {
	s := NewStandalone("mgmt-1")

	assert.True(t, s.IsActive())

	sum := s.Summary()
	assert.True(t, sum.IsMaster())
	require.Contains(t, sum.Nodes, "mgmt-1")

	rec := sum.Nodes["mgmt-1"]
	assert.Equal(t, StatusMaster, rec.Status)
	assert.Equal(t, rec.LocalTimestamp, rec.RemoteTimestamp)
}

func TestStandalone_GeneratesID(t *testing.T) {
	a, b := NewStandalone(""), NewStandalone("")

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.ID(), a.Summary().MasterID)
}

func TestSummary_JSON(t *testing.T) {
	raw := `{"ownId":"a","masterId":"a","nodes":{"a":{"nodeId":"a","status":"MASTER",` +
		`"localTimestamp":"2025-01-02T03:04:05Z","remoteTimestamp":"2025-01-02T03:04:06Z"}}}`

	var sum Summary
	require.NoError(t, json.Unmarshal([]byte(raw), &sum))

	assert.True(t, sum.IsMaster())
	assert.Equal(t, StatusMaster, sum.Nodes["a"].Status)
	assert.Equal(t, time.Second, sum.Nodes["a"].RemoteTimestamp.Sub(sum.Nodes["a"].LocalTimestamp))
}

func TestNewKVSource_Validation(t *testing.T) {
	_, err := NewKVSource(KVSourceConfig{Bucket: "b", Key: "k"})
	require.ErrorIs(t, err, errNoConn)

	_, nc := natstest.Connect(t)

	_, err = NewKVSource(KVSourceConfig{Conn: nc, Bucket: "b"})
	require.ErrorIs(t, err, errNoKey)
}

func putSummary(ctx context.Context, t *testing.T, kv jetstream.KeyValue, master string) {
	t.Helper()

	body, err := json.Marshal(Summary{
		OwnID:    master,
		MasterID: master,
		Nodes: map[string]NodeRecord{
			master: {NodeID: master, Status: StatusMaster},
			"mgmt-2": {NodeID: "mgmt-2", Status: StatusStandby},
		},
	})
	require.NoError(t, err)

	_, err = kv.Put(ctx, "summary", body)
	require.NoError(t, err)
}

func TestKVSource_FollowsKey(t *testing.T) {
	_, nc := natstest.Connect(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	src, err := NewKVSource(KVSourceConfig{Conn: nc, Bucket: "nodewarden-ha", Key: "summary", OwnID: "mgmt-1"})
	require.NoError(t, err)
	require.NoError(t, src.Start(ctx))
	t.Cleanup(func() { _ = src.Stop(context.Background()) })

	require.ErrorIs(t, src.Start(ctx), ErrSourceRunning)

	select {
	case <-src.Ready():
	case <-ctx.Done():
		t.Fatal("initial values never delivered")
	}

	assert.False(t, src.IsActive(), "inactive until a summary is published")
	assert.Equal(t, "mgmt-1", src.Summary().OwnID)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	kv, err := js.KeyValue(ctx, "nodewarden-ha")
	require.NoError(t, err)

	putSummary(ctx, t, kv, "mgmt-1")
	require.Eventually(t, src.IsActive, 5*time.Second, 10*time.Millisecond)

	sum := src.Summary()
	assert.Equal(t, "mgmt-1", sum.OwnID)
	assert.Len(t, sum.Nodes, 2)

	putSummary(ctx, t, kv, "mgmt-2")
	require.Eventually(t, func() bool { return !src.IsActive() }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "mgmt-1", src.Summary().OwnID, "own id is never taken from the published document")

	putSummary(ctx, t, kv, "mgmt-1")
	require.Eventually(t, src.IsActive, 5*time.Second, 10*time.Millisecond)

	_, err = kv.Put(ctx, "summary", []byte("{not json"))
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	assert.True(t, src.IsActive(), "malformed documents are ignored")

	require.NoError(t, kv.Delete(ctx, "summary"))
	require.Eventually(t, func() bool { return !src.IsActive() }, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, src.Summary().Nodes)

	require.NoError(t, src.Stop(ctx))
	require.NoError(t, src.Stop(ctx))
}

func TestKVSource_ReadsExistingValue(t *testing.T) {
	_, nc := natstest.Connect(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: "nodewarden-ha"})
	require.NoError(t, err)

	putSummary(ctx, t, kv, "mgmt-1")

	src, err := NewKVSource(KVSourceConfig{Conn: nc, Bucket: "nodewarden-ha", Key: "summary", OwnID: "mgmt-1"})
	require.NoError(t, err)
	require.NoError(t, src.Start(ctx))
	t.Cleanup(func() { _ = src.Stop(context.Background()) })

	<-src.Ready()
	assert.True(t, src.IsActive())
}
