// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"time"

	"go.uber.org/zap"
)

// Clock supplies wall-clock time to Condition evaluation (Design Note:
// "Global state → explicit context" — no package consults time.Now directly).
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock, backed by time.Now.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

type noopHostStateProvider struct{}

func (noopHostStateProvider) IsAppRunning(string) bool   { return false }
func (noopHostStateProvider) IsAppFrontmost(string) bool { return false }

// CoreContext carries the collaborators dispatch and execution need but that
// the core has no business constructing itself: a logger, a wall clock, and
// a host-state provider. It replaces the source's process-wide singletons
// (Design Note: "Global state → explicit context"); callers build one at
// startup and thread it through, they never reach for package state.
type CoreContext struct {
	Logger *zap.Logger
	Clock  Clock
	Host   HostStateProvider
}

// NewCoreContext builds a CoreContext, substituting safe defaults for any
// nil collaborator (a no-op logger, the real clock, a HostStateProvider that
// always answers false).
func NewCoreContext(logger *zap.Logger, clock Clock, host HostStateProvider) *CoreContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if host == nil {
		host = noopHostStateProvider{}
	}
	return &CoreContext{Logger: logger, Clock: clock, Host: host}
}

// DispatchContext is the evaluation environment the mapping engine hands to
// the executor and to Conditional's nested Condition (§4.3, §4.2). Velocity
// is non-nil only when the triggering ProcessedEvent carries one (Note).
type DispatchContext struct {
	Velocity    *uint8
	CurrentMode string
	Now         time.Time
	Host        HostStateProvider
}

// conditionContext adapts a DispatchContext to the narrower environment
// Condition.Evaluate expects.
func (c DispatchContext) conditionContext() ConditionContext {
	return ConditionContext{
		CurrentMode: c.CurrentMode,
		Velocity:    c.Velocity,
		WallClock:   c.Now,
		Host:        c.Host,
	}
}
