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

package natsutil

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/nodewarden/pkg/logger"
	"github.com/carverauto/nodewarden/pkg/natsutil/natstest"
)

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		subject  string
		want     []string
	}{
		{
			name:    "adds subject when list empty",
			subject: "nodewarden.entity.riak-1.sensor",
			want:    []string{"nodewarden.entity.riak-1.sensor"},
		},
		{
			name:     "keeps list when wildcard matches",
			subjects: []string{"nodewarden.entity.*.sensor"},
			subject:  "nodewarden.entity.riak-1.sensor",
			want:     []string{"nodewarden.entity.*.sensor"},
		},
		{
			name:     "keeps list when greater wildcard matches",
			subjects: []string{"nodewarden.>"},
			subject:  "nodewarden.entity.riak-1.sensor",
			want:     []string{"nodewarden.>"},
		},
		{
			name:     "appends when unmatched",
			subjects: []string{"events.poller.*"},
			subject:  "nodewarden.entity.riak-1.sensor",
			want:     []string{"events.poller.*", "nodewarden.entity.riak-1.sensor"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ensureSubjectList(append([]string(nil), tc.subjects...), tc.subject)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "a.b.c", "a.b.c", true},
		{"single wildcard", "a.*.c", "a.b.c", true},
		{"greater wildcard", "a.>", "a.b.c", true},
		{"greater wildcard needs a token", "a.>", "a", false},
		{"token mismatch", "a.b.c", "a.x.c", false},
		{"pattern shorter", "a.b", "a.b.c", false},
		{"pattern longer", "a.b.c.d", "a.b.c", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, matchesSubject(tc.pattern, tc.subject))
		})
	}
}

func TestTLSConfig_RequiresMTLS(t *testing.T) {
	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrMTLSRequired)

	_, err = TLSConfig(&Security{Mode: "none"})
	require.ErrorIs(t, err, ErrMTLSRequired)

	_, err = TLSConfig(&Security{Mode: "mtls", CertDir: t.TempDir(), CertFile: "client.pem", KeyFile: "client-key.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client certificate")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/etc/certs/ca.pem", resolvePath("/etc/certs", "ca.pem"))
	assert.Equal(t, "/abs/ca.pem", resolvePath("/etc/certs", "/abs/ca.pem"))
	assert.Equal(t, "ca.pem", resolvePath("", "ca.pem"))
	assert.Empty(t, resolvePath("/etc/certs", ""))
}

func TestConnectAndEnsureStream(t *testing.T) {
	srv := natstest.RunJetStreamServer(t)

	nc, err := Connect(srv.ClientURL(), "natsutil-test", nil, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := EnsureStream(ctx, js, "NODEWARDEN", "nodewarden.entity.*.lifecycle")
	require.NoError(t, err)
	assert.Equal(t, []string{"nodewarden.entity.*.lifecycle"}, stream.CachedInfo().Config.Subjects)

	stream, err = EnsureStream(ctx, js, "NODEWARDEN", "nodewarden.entity.riak-1.lifecycle", "nodewarden.entity.*.sensor")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"nodewarden.entity.*.lifecycle", "nodewarden.entity.*.sensor"},
		stream.CachedInfo().Config.Subjects)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "natsutil-test", nil, logger.NewTestLogger())
	require.Error(t, err)
}
