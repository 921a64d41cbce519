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

// Package coremock provides test doubles for the core's injected
// collaborators (Clock, LEDDevice, HostStateProvider, LeafRunner), so
// downstream packages exercising core-driven flows don't each hand-roll
// their own fakes.
package coremock

import (
	"sync"
	"time"

	"github.com/padbridge/core"
	"github.com/padbridge/core/ledcolor"
)

// Clock is a settable core.Clock for deterministic gesture-timing tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock builds a Clock starting at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now implements core.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// LEDDevice records every core.FeedbackCommand it receives and the last
// color commanded per element, implementing core.LEDDevice.
type LEDDevice struct {
	mu      sync.Mutex
	Applied []core.FeedbackCommand
	last    map[core.ElementId]ledcolor.RGB
}

// NewLEDDevice builds an empty recording LEDDevice.
func NewLEDDevice() *LEDDevice {
	return &LEDDevice{last: make(map[core.ElementId]ledcolor.RGB)}
}

// Apply implements core.LEDDevice.
func (d *LEDDevice) Apply(cmd core.FeedbackCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Applied = append(d.Applied, cmd)
	switch c := cmd.(type) {
	case core.SetPad:
		d.last[c.Id] = c.Color
	case core.ClearAllPads:
		d.last = make(map[core.ElementId]ledcolor.RGB)
	}
	return nil
}

// ColorOf returns the last color commanded for id.
func (d *LEDDevice) ColorOf(id core.ElementId) ledcolor.RGB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last[id]
}

// HostStateProvider is a map-backed core.HostStateProvider.
type HostStateProvider struct {
	mu        sync.Mutex
	Running   map[string]bool
	Frontmost map[string]bool
}

// NewHostStateProvider builds an empty HostStateProvider.
func NewHostStateProvider() *HostStateProvider {
	return &HostStateProvider{
		Running:   make(map[string]bool),
		Frontmost: make(map[string]bool),
	}
}

// IsAppRunning implements core.HostStateProvider.
func (h *HostStateProvider) IsAppRunning(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Running[name]
}

// IsAppFrontmost implements core.HostStateProvider.
func (h *HostStateProvider) IsAppFrontmost(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Frontmost[name]
}

// SetRunning marks name as running (or not).
func (h *HostStateProvider) SetRunning(name string, running bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Running[name] = running
}

// SetFrontmost marks name as frontmost (or not).
func (h *HostStateProvider) SetFrontmost(name string, frontmost bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Frontmost[name] = frontmost
}

// LeafRunnerCall records one platform-leaf invocation, for assertions
// against the sequence a test's Executor drove.
type LeafRunnerCall struct {
	Method string
	Action core.Action
	Ctx    core.ExecutionContext
}

// LeafRunner records every call made through core.Executor's LeafRunner
// capability and always reports Completed.
type LeafRunner struct {
	mu    sync.Mutex
	Calls []LeafRunnerCall
}

// NewLeafRunner builds an empty recording LeafRunner.
func NewLeafRunner() *LeafRunner {
	return &LeafRunner{}
}

func (r *LeafRunner) record(method string, a core.Action, ctx core.ExecutionContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, LeafRunnerCall{Method: method, Action: a, Ctx: ctx})
}

// Keystroke implements core.LeafRunner.
func (r *LeafRunner) Keystroke(ctx core.ExecutionContext, a core.Keystroke) core.ExecutionOutcome {
	r.record("Keystroke", a, ctx)
	return core.ExecutionOutcome{Kind: core.Completed}
}

// Text implements core.LeafRunner.
func (r *LeafRunner) Text(ctx core.ExecutionContext, a core.Text) core.ExecutionOutcome {
	r.record("Text", a, ctx)
	return core.ExecutionOutcome{Kind: core.Completed}
}

// MouseClick implements core.LeafRunner.
func (r *LeafRunner) MouseClick(ctx core.ExecutionContext, a core.MouseClick) core.ExecutionOutcome {
	r.record("MouseClick", a, ctx)
	return core.ExecutionOutcome{Kind: core.Completed}
}

// Launch implements core.LeafRunner.
func (r *LeafRunner) Launch(ctx core.ExecutionContext, a core.Launch) core.ExecutionOutcome {
	r.record("Launch", a, ctx)
	return core.ExecutionOutcome{Kind: core.Completed}
}

// VolumeControl implements core.LeafRunner.
func (r *LeafRunner) VolumeControl(ctx core.ExecutionContext, a core.VolumeControl) core.ExecutionOutcome {
	r.record("VolumeControl", a, ctx)
	return core.ExecutionOutcome{Kind: core.Completed}
}
