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

//go:generate mockgen -destination=mock_driver.go -package=riak github.com/carverauto/nodewarden/pkg/riak Driver,CommandRunner

import (
	"context"

	"github.com/carverauto/nodewarden/pkg/entity"
)

// Driver performs the imperative operations of one Riak node. Calls are
// synchronous; errors are driver-defined and reach effector callers as-is.
type Driver interface {
	entity.ProcessDriver

	JoinCluster(ctx context.Context, nodeName string) error
	LeaveCluster(ctx context.Context) error
	RemoveNode(ctx context.Context, nodeName string) error
	BucketTypeCreate(ctx context.Context, name, properties string) error
	BucketTypeList(ctx context.Context) ([]string, error)
	BucketTypeStatus(ctx context.Context, name string) ([]string, error)
	BucketTypeUpdate(ctx context.Context, name, properties string) error
	BucketTypeActivate(ctx context.Context, name string) error
	RecoverFailedNode(ctx context.Context, nodeName string) error
	OSMajorVersion(ctx context.Context) (string, error)
}

// CommandRunner executes a command on the node host and returns its
// combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
