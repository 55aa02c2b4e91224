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

package sensor

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testGets    = New[int64]("test.gets", "gets")
	testMembers = New[[]string]("test.members", "members")
	testUp      = New[bool]("test.up", "up")
)

func TestStore_UnsetUntilFirstWrite(t *testing.T) {
	s := NewStore()

	_, ok := Get(s, testGets)
	assert.False(t, ok)

	Set(s, testGets, 42)

	v, ok := Get(s, testGets)
	require.True(t, ok)
	assert.Equal(t, int64(42), v)
}

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()

	Set(s, testGets, 1)
	Set(s, testGets, -1)
	Set(s, testGets, 7)

	assert.Equal(t, int64(7), GetOrDefault(s, testGets, 0))
}

func TestStore_WrongTypeIsNotReturned(t *testing.T) {
	s := NewStore()
	s.Set(testGets.Key(), "not a number")

	_, ok := Get(s, testGets)
	assert.False(t, ok)
	assert.Equal(t, int64(5), GetOrDefault(s, testGets, 5))
}

func TestStore_ClearAndSnapshot(t *testing.T) {
	s := NewStore()
	Set(s, testMembers, []string{"riak@a", "riak@b"})
	Set(s, testUp, true)

	snap := s.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, []string{"riak@a", "riak@b"}, snap[testMembers.Key()])

	s.Clear(testUp.Key())

	_, ok := Get(s, testUp)
	assert.False(t, ok)
	assert.Len(t, snap, 2, "snapshot is a copy")
}

func TestStore_ListenersSeePreviousValue(t *testing.T) {
	s := NewStore()

	var changes []Change

	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	Set(s, testGets, 1)
	Set(s, testGets, 2)
	unsubscribe()
	unsubscribe()
	Set(s, testGets, 3)

	require.Len(t, changes, 2)
	assert.False(t, changes[0].HadPrevious)
	assert.Equal(t, int64(1), changes[0].Value)
	assert.True(t, changes[1].HadPrevious)
	assert.Equal(t, int64(1), changes[1].Previous)
	assert.Equal(t, int64(2), changes[1].Value)
	assert.False(t, changes[1].Time.IsZero())
}

func TestStore_ListenerMayWrite(t *testing.T) {
	s := NewStore()
	derived := New[int64]("test.derived", "derived")

	s.Subscribe(func(c Change) {
		if c.Key == testGets.Key() {
			Set(s, derived, c.Value.(int64)*2)
		}
	})

	Set(s, testGets, 21)

	assert.Equal(t, int64(42), GetOrDefault(s, derived, 0))
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := NewStore()

	var (
		wg     sync.WaitGroup
		writes atomic.Int64
	)

	s.Subscribe(func(Change) { writes.Add(1) })

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			key := New[int]("test.concurrent."+string(rune('a'+n)), "")
			for j := 0; j < 100; j++ {
				Set(s, key, j)
				_, _ = Get(s, key)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int64(1600), writes.Load())
	assert.Len(t, s.Snapshot(), 16)
}

func TestConfigKey_Resolve(t *testing.T) {
	withDefault := NewConfigKeyWithDefault("test.version", "version", "2.0.5")
	required := NewConfigKey[string]("test.template", "template")

	bag := Bag{required.Key(): "file:///vm.args"}

	v, ok := Resolve(bag, withDefault)
	assert.True(t, ok)
	assert.Equal(t, "2.0.5", v)
	assert.False(t, IsExplicit(bag, withDefault))

	v, ok = Resolve(bag, required)
	assert.True(t, ok)
	assert.Equal(t, "file:///vm.args", v)
	assert.True(t, IsExplicit(bag, required))

	_, ok = Resolve(Bag{}, required)
	assert.False(t, ok)

	_, ok = Resolve(Bag{required.Key(): 12}, required)
	assert.False(t, ok, "wrong type resolves as absent")
}

func TestSensor_TypeName(t *testing.T) {
	assert.Equal(t, "int64", testGets.TypeName())
	assert.Equal(t, "[]string", testMembers.TypeName())
	assert.Equal(t, "test.gets", testGets.String())
}
