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

//go:generate mockgen -destination=mock_entity.go -package=entity github.com/carverauto/nodewarden/pkg/entity Hooks,ProcessDriver

import "context"

// ProcessDriver starts, stops and checks the managed software process.
// One driver instance belongs to exactly one entity.
type ProcessDriver interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning(ctx context.Context) (bool, error)
}

// Hooks are the entity-type specific steps of the lifecycle.
type Hooks interface {
	// ValidateConfig runs on Init, before any infrastructure is touched.
	ValidateConfig() error
	// ConnectSensors runs once the process has started and starts the
	// entity's feeds.
	ConnectSensors(ctx context.Context) error
	// DisconnectSensors runs before the process is stopped and must stop
	// every feed ConnectSensors started. It may be called more than once.
	DisconnectSensors(ctx context.Context) error
}
