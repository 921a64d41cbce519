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
	"fmt"
	"strconv"
	"strings"
)

// Validate turns cfg into a CompiledMap, or returns a *ValidationErrors
// listing every problem found. No partial CompiledMap is ever returned
// alongside an error.
func Validate(cfg Config) (*CompiledMap, error) {
	v := &validation{
		modeNames: make(map[string]bool, len(cfg.Modes)),
	}
	for _, mc := range cfg.Modes {
		v.modeNames[mc.Name] = true
	}

	v.checkTimings(cfg.AdvancedTimings)

	modeOrder := make([]string, 0, len(cfg.Modes))
	modeIndex := make(map[string]int, len(cfg.Modes))
	perMode := make(map[string]bucket, len(cfg.Modes))
	modeColor := make(map[string]ModeColor, len(cfg.Modes))

	for i, mc := range cfg.Modes {
		path := fmt.Sprintf("modes[%d]", i)
		if mc.Name == "" {
			v.fail(path+".name", "empty", "mode name must not be empty")
		}
		if _, dup := modeIndex[mc.Name]; dup {
			v.fail(path+".name", "duplicate", "duplicate mode name "+mc.Name)
		}
		if c, ok := parseHexColor(mc.Color); ok {
			modeColor[mc.Name] = c
		} else if mc.Color != "" {
			v.fail(path+".color", "invalid", "color must be #rrggbb")
		}
		for j, m := range mc.Mappings {
			v.checkMapping(fmt.Sprintf("%s.mappings[%d]", path, j), m)
		}
		modeOrder = append(modeOrder, mc.Name)
		modeIndex[mc.Name] = i
		perMode[mc.Name] = newBucket(mc.Mappings)
	}

	for i, m := range cfg.GlobalMappings {
		v.checkMapping(fmt.Sprintf("global_mappings[%d]", i), m)
	}

	if err := newValidationErrors(v.issues); err != nil {
		return nil, err
	}

	return &CompiledMap{
		modeOrder: modeOrder,
		modeIndex: modeIndex,
		perMode:   perMode,
		global:    newBucket(cfg.GlobalMappings),
		timings:   cfg.AdvancedTimings,
		ledScheme: cfg.LedScheme,
		modeColor: modeColor,
	}, nil
}

type validation struct {
	modeNames map[string]bool
	issues    []ValidationIssue
}

func (v *validation) fail(path, kind, msg string) {
	v.issues = append(v.issues, ValidationIssue{Path: path, Kind: kind, Message: msg})
}

func (v *validation) checkTimings(t AdvancedTimings) {
	const path = "advanced_settings"
	if t.LongPressThresholdMs < 50 || t.LongPressThresholdMs > 10000 {
		v.fail(path+".long_press_threshold_ms", "range", "must be in [50, 10000]")
	}
	if t.DoubleTapWindowMs < 50 || t.DoubleTapWindowMs > 2000 {
		v.fail(path+".double_tap_window_ms", "range", "must be in [50, 2000]")
	}
	if t.ChordWindowMs < 10 || t.ChordWindowMs > 1000 {
		v.fail(path+".chord_window_ms", "range", "must be in [10, 1000]")
	}
	if t.EncoderIdleMs <= 0 {
		v.fail(path+".encoder_idle_ms", "range", "must be positive")
	}
	if t.DeadZonePercent < 0 || t.DeadZonePercent > 100 {
		v.fail(path+".dead_zone", "range", "must be in [0, 100]")
	}
}

func (v *validation) checkMapping(path string, m Mapping) {
	v.checkTrigger(path+".trigger", m.Trigger)
	v.checkAction(path+".action", m.Action, 1)
}

func (v *validation) checkTrigger(path string, t Trigger) {
	if t.IdMin > t.IdMax {
		v.fail(path, "range", "id range min must be <= max")
		return
	}
	if t.Kind == TriggerChord {
		if len(t.Ids) < 2 {
			v.fail(path, "range", "chord trigger needs at least 2 ids")
		}
		for _, id := range t.Ids {
			v.checkNamespace(path, id)
		}
		return
	}
	v.checkNamespace(path, t.IdMin)
	v.checkNamespace(path, t.IdMax)
}

func (v *validation) checkNamespace(path string, id ElementId) {
	if id.Namespace() == NamespaceUnknown {
		v.fail(path, "namespace", fmt.Sprintf("element id %d is not in a known namespace", id))
	}
}

func (v *validation) checkAction(path string, a Action, depth int) {
	if a == nil {
		return
	}
	if depth > MaxActionDepth {
		v.fail(path, "depth", fmt.Sprintf("action nesting exceeds max depth %d", MaxActionDepth))
		return
	}
	switch act := a.(type) {
	case Keystroke:
		if len(act.Keys) == 0 {
			v.fail(path+".keys", "empty", "keystroke must name at least one key")
		}
		for _, k := range act.Keys {
			if !k.Valid() {
				v.fail(path+".keys", "unknown_key", "unknown key "+k.String())
			}
		}
		for _, k := range act.Modifiers {
			if !k.Valid() {
				v.fail(path+".modifiers", "unknown_key", "unknown modifier "+k.String())
			}
		}
	case Launch:
		if act.Target == "" {
			v.fail(path+".target", "empty", "launch target must not be empty")
		} else if strings.Contains(act.Target, "..") {
			v.fail(path+".target", "path_traversal", "launch target must not contain '..'")
		}
	case Shell:
		tokens, err := tokenizeShellCommand(act.Command)
		if err != nil {
			v.fail(path+".command", "denied", err.Error())
		} else if len(tokens) == 0 {
			v.fail(path+".command", "empty", "shell command has no tokens")
		}
	case VolumeControl:
		if act.Op == VolumeSet && (act.Level < 0 || act.Level > 100) {
			v.fail(path+".level", "range", "volume level must be in [0, 100]")
		}
	case ModeChange:
		if !v.modeNames[act.Target] {
			v.fail(path+".target", "unknown_mode", "unknown mode "+act.Target)
		}
	case Sequence:
		for i, step := range act.Steps {
			v.checkAction(fmt.Sprintf("%s.steps[%d]", path, i), step.Action, depth+1)
		}
	case Delay:
		if act.Ms < 0 {
			v.fail(path+".ms", "range", "delay must not be negative")
		}
	case Repeat:
		if act.Count < 1 {
			v.fail(path+".count", "range", "repeat count must be >= 1")
		}
		v.checkAction(path+".inner", act.Inner, depth+1)
	case Conditional:
		v.checkCondition(path+".when", act.When)
		v.checkAction(path+".then", act.Then, depth+1)
		v.checkAction(path+".else", act.Else, depth+1)
	case Text, MouseClick:
		// no further constraints
	}
}

func (v *validation) checkCondition(path string, c Condition) {
	switch cond := c.(type) {
	case TimeRange:
		if _, ok := parseHHMM(cond.Start); !ok {
			v.fail(path+".start", "invalid", "must be HH:MM")
		}
		if _, ok := parseHHMM(cond.End); !ok {
			v.fail(path+".end", "invalid", "must be HH:MM")
		}
	case ModeIs:
		if !v.modeNames[cond.Name] {
			v.fail(path+".name", "unknown_mode", "unknown mode "+cond.Name)
		}
	case And:
		for i, sub := range cond.Conditions {
			v.checkCondition(fmt.Sprintf("%s.conditions[%d]", path, i), sub)
		}
	case Or:
		for i, sub := range cond.Conditions {
			v.checkCondition(fmt.Sprintf("%s.conditions[%d]", path, i), sub)
		}
	case Not:
		v.checkCondition(path+".inner", cond.Inner)
	}
}

// parseHexColor parses "#rrggbb"; ok is false for anything else.
func parseHexColor(s string) (ModeColor, bool) {
	if len(s) != 7 || s[0] != '#' {
		return ModeColor{}, false
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return ModeColor{}, false
	}
	return ModeColor{uint8(r), uint8(g), uint8(b)}, true
}
