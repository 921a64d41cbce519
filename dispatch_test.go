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
	"testing"

	"github.com/padbridge/core/keycode"
)

var keyA = keycode.KeyA
var keyB = keycode.KeyB

func mustCompile(t *testing.T, cfg Config) *CompiledMap {
	t.Helper()
	cm, err := Validate(cfg)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return cm
}

// TestDispatchSoftHardSplit is §8 end-to-end scenario 1.
func TestDispatchSoftHardSplit(t *testing.T) {
	cfg := Config{
		Modes: []ModeConfig{{
			Name: "Default",
			Mappings: []Mapping{
				{Trigger: Trigger{Kind: TriggerNote, IdMin: 36, IdMax: 36, VelocityMin: 0, VelocityMax: 40}, Action: Keystroke{Keys: []keycode.Key{keyA}}},
				{Trigger: Trigger{Kind: TriggerNote, IdMin: 36, IdMax: 36, VelocityMin: 81, VelocityMax: 127}, Action: Keystroke{Keys: []keycode.Key{keyB}}},
			},
		}},
		AdvancedTimings: DefaultAdvancedTimings(),
	}
	cm := mustCompile(t, cfg)
	engine := NewMappingEngine()
	engine.adoptInitialMode(cm)
	engine.live.Store(cm)

	p := NewProcessor(cfg.AdvancedTimings)
	var fired []Action
	for _, ev := range p.Process(NewNoteOn(at(0), 36, 20, 0), at(0)) {
		fired = append(fired, engine.Dispatch(ev, at(0), nil)...)
	}
	for _, ev := range p.Process(NewNoteOff(at(10), 36, 0), at(10)) {
		fired = append(fired, engine.Dispatch(ev, at(10), nil)...)
	}
	for _, ev := range p.Process(NewNoteOn(at(20), 36, 100, 0), at(20)) {
		fired = append(fired, engine.Dispatch(ev, at(20), nil)...)
	}
	for _, ev := range p.Process(NewNoteOff(at(30), 36, 0), at(30)) {
		fired = append(fired, engine.Dispatch(ev, at(30), nil)...)
	}

	if len(fired) != 2 {
		t.Fatalf("expected exactly 2 actions, got %#v", fired)
	}
	if ks, ok := fired[0].(Keystroke); !ok || ks.Keys[0] != keyA {
		t.Errorf("expected first action Keystroke{A}, got %#v", fired[0])
	}
	if ks, ok := fired[1].(Keystroke); !ok || ks.Keys[0] != keyB {
		t.Errorf("expected second action Keystroke{B}, got %#v", fired[1])
	}
}

// TestDispatchReloadAtomicity is §8 end-to-end scenario 5.
func TestDispatchReloadAtomicity(t *testing.T) {
	cfg1 := Config{
		Modes: []ModeConfig{{Name: "Default", Mappings: []Mapping{
			{Trigger: Trigger{Kind: TriggerNote, IdMin: 36, IdMax: 36}, Action: Keystroke{Keys: []keycode.Key{keyA}}},
		}}},
		AdvancedTimings: DefaultAdvancedTimings(),
	}
	cfg2 := Config{
		Modes: []ModeConfig{{Name: "Default", Mappings: []Mapping{
			{Trigger: Trigger{Kind: TriggerNote, IdMin: 36, IdMax: 36}, Action: Keystroke{Keys: []keycode.Key{keyB}}},
		}}},
		AdvancedTimings: DefaultAdvancedTimings(),
	}

	engine := NewMappingEngine()
	rc := NewReloadCoordinator(engine, nil)
	if _, err := rc.Reload(cfg1); err != nil {
		t.Fatalf("reload 1: %v", err)
	}

	note := newNote(at(0), 36, 64)
	actions := engine.Dispatch(note, at(0), nil)
	if len(actions) != 1 || actions[0].(Keystroke).Keys[0] != keyA {
		t.Fatalf("expected Keystroke{A} pre-reload, got %#v", actions)
	}

	if _, err := rc.Reload(cfg2); err != nil {
		t.Fatalf("reload 2: %v", err)
	}

	actions = engine.Dispatch(note, at(1), nil)
	if len(actions) != 1 || actions[0].(Keystroke).Keys[0] != keyB {
		t.Fatalf("expected Keystroke{B} post-reload, got %#v", actions)
	}
}

func TestMappingEngineSetModeIdempotent(t *testing.T) {
	engine := NewMappingEngine()
	engine.mode.Store("Default")
	engine.SetMode("Default")
	if engine.CurrentMode() != "Default" {
		t.Fatalf("expected mode to stay Default, got %q", engine.CurrentMode())
	}
}
