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
	"sync/atomic"
	"time"
)

// liveMap is the single atomic, versioned publication point for a
// CompiledMap (Design Note: "Shared mutable map → versioned immutable
// publication"). The MappingEngine reads it once per dispatch; the
// ReloadCoordinator is the only writer.
type liveMap struct {
	ptr atomic.Pointer[CompiledMap]
}

func (l *liveMap) Load() *CompiledMap   { return l.ptr.Load() }
func (l *liveMap) Store(m *CompiledMap) { l.ptr.Store(m) }

// MappingEngine decides which compiled mappings fire for a ProcessedEvent
// and returns their actions, in order, for the executor to run. It does
// not execute actions itself.
type MappingEngine struct {
	live *liveMap
	mode atomic.Value // string; readable lock-free by menu/IPC layers
}

// NewMappingEngine builds an engine with no live map; it will not dispatch
// anything (Dispatch returns nil) until a ReloadCoordinator publishes one.
func NewMappingEngine() *MappingEngine {
	return &MappingEngine{live: &liveMap{}}
}

// CurrentMode returns the mode dispatch currently selects against. Safe to
// call from any goroutine.
func (e *MappingEngine) CurrentMode() string {
	v, _ := e.mode.Load().(string)
	return v
}

// SetMode changes the current mode. Setting the same mode twice is a
// deliberate no-op (§8 round-trip property): no redundant transition is
// observable.
func (e *MappingEngine) SetMode(name string) {
	if e.CurrentMode() == name {
		return
	}
	e.mode.Store(name)
}

// adoptInitialMode is called by the ReloadCoordinator the first time a
// CompiledMap is published, so CurrentMode starts at the map's declared
// initial mode rather than "".
func (e *MappingEngine) adoptInitialMode(cm *CompiledMap) {
	if e.CurrentMode() == "" && cm != nil {
		e.mode.Store(cm.InitialMode())
	}
}

// Dispatch resolves ev against the live CompiledMap's mode-scoped mappings
// (current mode, declaration order) then global mappings (declaration
// order), returning every matching action — not just the first. A
// ModeChange among the returned actions is committed to CurrentMode before
// Dispatch returns, after trigger selection has already run against the
// old mode (§4.2 "Mode change as action").
func (e *MappingEngine) Dispatch(ev ProcessedEvent, now time.Time, host HostStateProvider) []Action {
	cm := e.live.Load()
	if cm == nil {
		return nil
	}
	mode := e.CurrentMode()

	var actions []Action
	if b, ok := cm.perMode[mode]; ok {
		actions = append(actions, fireBucket(b, ev)...)
	}
	actions = append(actions, fireBucket(cm.global, ev)...)

	var nextMode string
	var haveModeChange bool
	for _, a := range actions {
		if mc, ok := a.(ModeChange); ok {
			nextMode = mc.Target
			haveModeChange = true
		}
	}
	if haveModeChange {
		e.SetMode(nextMode)
	}

	return actions
}

// ContextFor builds the DispatchContext for ev, current mode, and host, so
// a caller can hand the Executor a context without re-deriving ev's
// velocity by hand. Built before Dispatch, it carries the mode Dispatch
// selects triggers under; Dispatch commits a ModeChange before it returns,
// so a context built afterwards carries the new mode instead.
func (e *MappingEngine) ContextFor(ev ProcessedEvent, now time.Time, host HostStateProvider) DispatchContext {
	return DispatchContext{
		Velocity:    eventVelocity(ev),
		CurrentMode: e.CurrentMode(),
		Now:         now,
		Host:        host,
	}
}

func fireBucket(b bucket, ev ProcessedEvent) []Action {
	var actions []Action
	for _, idx := range b.candidates(ev) {
		ct := b.ordered[idx]
		if ct.trigger.matches(ev) {
			actions = append(actions, ct.action)
		}
	}
	return actions
}

// eventVelocity extracts the raw velocity a ProcessedEvent carries, for
// DispatchContext.Velocity; only Note carries one.
func eventVelocity(ev ProcessedEvent) *uint8 {
	if n, ok := ev.(Note); ok {
		v := n.RawVelocity
		return &v
	}
	return nil
}
