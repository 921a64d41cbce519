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

package confload

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/padbridge/core"
	"github.com/padbridge/core/keycode"
)

// LoadFile decodes the TOML file at path and builds a core.Config from it.
func LoadFile(path string) (core.Config, error) {
	var doc configDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return core.Config{}, fmt.Errorf("confload: %w", err)
	}
	return build(doc)
}

// LoadBytes decodes raw TOML bytes, for callers that already have the
// config in memory (tests, embedded defaults).
func LoadBytes(data []byte) (core.Config, error) {
	var doc configDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return core.Config{}, fmt.Errorf("confload: %w", err)
	}
	return build(doc)
}

func build(doc configDoc) (core.Config, error) {
	hints := make(map[string]core.ElementId, len(doc.DeviceHints))
	for name, id := range doc.DeviceHints {
		hints[name] = core.ElementId(id)
	}

	cfg := core.Config{
		Device:      doc.Device,
		LedScheme:   core.SchemeName(orDefault(doc.LedScheme, string(core.SchemeReactive))),
		DeviceHints: hints,
	}

	cfg.AdvancedTimings = core.AdvancedTimings{
		LongPressThresholdMs: orDefaultInt64(doc.AdvancedSettings.LongPressThresholdMs, 600),
		DoubleTapWindowMs:    orDefaultInt64(doc.AdvancedSettings.DoubleTapWindowMs, 300),
		ChordWindowMs:        orDefaultInt64(doc.AdvancedSettings.ChordWindowMs, 60),
		EncoderIdleMs:        orDefaultInt64(doc.AdvancedSettings.EncoderIdleMs, 250),
		DeadZonePercent:      doc.AdvancedSettings.DeadZonePercent,
		VelocityCurve:        parseVelocityCurve(doc.AdvancedSettings.VelocityCurve),
	}

	for _, md := range doc.Modes {
		mode := core.ModeConfig{Name: md.Name, Color: md.Color}
		for _, m := range md.Mappings {
			mapping, err := buildMapping(m, hints)
			if err != nil {
				return core.Config{}, fmt.Errorf("confload: mode %q: %w", md.Name, err)
			}
			mode.Mappings = append(mode.Mappings, mapping)
		}
		cfg.Modes = append(cfg.Modes, mode)
	}

	for _, m := range doc.GlobalMappings {
		mapping, err := buildMapping(m, hints)
		if err != nil {
			return core.Config{}, fmt.Errorf("confload: global_mappings: %w", err)
		}
		cfg.GlobalMappings = append(cfg.GlobalMappings, mapping)
	}

	return cfg, nil
}

func buildMapping(m mappingDoc, hints map[string]core.ElementId) (core.Mapping, error) {
	trig, err := buildTrigger(m.Trigger, hints)
	if err != nil {
		return core.Mapping{}, err
	}
	act, err := buildAction(m.Action, hints)
	if err != nil {
		return core.Mapping{}, err
	}
	return core.Mapping{Trigger: trig, Action: act}, nil
}

// resolveId resolves a TOML id string: a device_hints alias name if one
// matches, otherwise a plain decimal ElementId.
func resolveId(s string, hints map[string]core.ElementId) (core.ElementId, error) {
	if s == "" {
		return 0, nil
	}
	if id, ok := hints[s]; ok {
		return id, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unresolvable element id %q (not a device_hints alias or a number)", s)
	}
	return core.ElementId(n), nil
}

func buildTrigger(t triggerDoc, hints map[string]core.ElementId) (core.Trigger, error) {
	kind, ok := triggerKinds[t.Kind]
	if !ok {
		return core.Trigger{}, fmt.Errorf("unknown trigger kind %q", t.Kind)
	}

	result := core.Trigger{
		Kind:           kind,
		Direction:      parseDirection(t.Direction),
		MinHeldMs:      t.DurationMs,
		MaxGapMs:       t.WindowMs,
		MaxFormationMs: t.WindowMs,
	}
	if t.VelocityMin != nil {
		result.VelocityMin = uint8(*t.VelocityMin)
	}
	if t.VelocityMax != nil {
		result.VelocityMax = uint8(*t.VelocityMax)
	}
	if t.MinMagnitude != nil {
		result.MinMagnitude = uint8(*t.MinMagnitude)
	}

	if len(t.Ids) > 0 {
		for _, name := range t.Ids {
			id, err := resolveId(name, hints)
			if err != nil {
				return core.Trigger{}, err
			}
			result.Ids = append(result.Ids, id)
		}
		return result, nil
	}

	if t.Id != "" {
		id, err := resolveId(t.Id, hints)
		if err != nil {
			return core.Trigger{}, err
		}
		result.IdMin, result.IdMax = id, id
		return result, nil
	}

	idMin, err := resolveId(t.IdMin, hints)
	if err != nil {
		return core.Trigger{}, err
	}
	idMax, err := resolveId(t.IdMax, hints)
	if err != nil {
		return core.Trigger{}, err
	}
	result.IdMin, result.IdMax = idMin, idMax
	return result, nil
}

var triggerKinds = map[string]core.TriggerKind{
	"note":               core.TriggerNote,
	"note_release":       core.TriggerNoteRelease,
	"long_press":         core.TriggerLongPress,
	"double_tap":         core.TriggerDoubleTap,
	"chord":              core.TriggerChord,
	"encoder":            core.TriggerEncoder,
	"aftertouch_changed": core.TriggerAftertouchChanged,
	"pitch_bend_changed": core.TriggerPitchBendChanged,
	"cc_changed":         core.TriggerCCChanged,
	"axis_direction":     core.TriggerAxisDirection,
}

func parseDirection(s string) core.Direction {
	switch s {
	case "cw":
		return core.DirCW
	case "ccw":
		return core.DirCCW
	case "up":
		return core.DirUp
	case "down":
		return core.DirDown
	case "left":
		return core.DirLeft
	case "right":
		return core.DirRight
	case "center":
		return core.DirCenter
	default:
		return core.DirNone
	}
}

func parseVelocityCurve(s string) core.VelocityCurve {
	switch s {
	case "soft":
		return core.VelocityCurveSoft
	case "hard":
		return core.VelocityCurveHard
	default:
		return core.VelocityCurveLinear
	}
}

func buildAction(a actionDoc, hints map[string]core.ElementId) (core.Action, error) {
	switch a.Type {
	case "keystroke":
		keys, err := parseKeys(a.Keys)
		if err != nil {
			return nil, err
		}
		mods, err := parseKeys(a.Modifiers)
		if err != nil {
			return nil, err
		}
		return core.Keystroke{Keys: keys, Modifiers: mods}, nil
	case "text":
		return core.Text{String: a.Text}, nil
	case "mouse_click":
		btn, ok := keycode.ParseMouseButton(a.Button)
		if !ok {
			return nil, fmt.Errorf("unknown mouse button %q", a.Button)
		}
		return core.MouseClick{Button: btn, X: a.X, Y: a.Y}, nil
	case "launch":
		return core.Launch{Target: a.Target}, nil
	case "shell":
		return core.Shell{Command: a.Command}, nil
	case "volume":
		op, ok := volumeOps[a.Op]
		if !ok {
			return nil, fmt.Errorf("unknown volume op %q", a.Op)
		}
		return core.VolumeControl{Op: op, Level: a.Level}, nil
	case "mode_change":
		return core.ModeChange{Target: a.Target}, nil
	case "sequence":
		steps := make([]core.SequenceStep, 0, len(a.Steps))
		for _, s := range a.Steps {
			inner, err := buildAction(s.Action, hints)
			if err != nil {
				return nil, err
			}
			steps = append(steps, core.SequenceStep{Action: inner, NonFatal: s.NonFatal})
		}
		return core.Sequence{Steps: steps}, nil
	case "delay":
		return core.Delay{Ms: a.Ms}, nil
	case "repeat":
		if a.Inner == nil {
			return nil, fmt.Errorf("repeat action missing inner")
		}
		inner, err := buildAction(*a.Inner, hints)
		if err != nil {
			return nil, err
		}
		return core.Repeat{Inner: inner, Count: a.Count, GapMs: a.GapMs}, nil
	case "conditional":
		cond, err := buildCondition(a.When)
		if err != nil {
			return nil, err
		}
		var then, els core.Action
		if a.Then != nil {
			if then, err = buildAction(*a.Then, hints); err != nil {
				return nil, err
			}
		}
		if a.Else != nil {
			if els, err = buildAction(*a.Else, hints); err != nil {
				return nil, err
			}
		}
		return core.Conditional{When: cond, Then: then, Else: els}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

var volumeOps = map[string]core.VolumeOp{
	"up":   core.VolumeUp,
	"down": core.VolumeDown,
	"mute": core.VolumeMute,
	"set":  core.VolumeSet,
}

func parseKeys(names []string) ([]keycode.Key, error) {
	keys := make([]keycode.Key, 0, len(names))
	for _, name := range names {
		k, ok := keycode.ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func buildCondition(c *conditionDoc) (core.Condition, error) {
	if c == nil {
		return core.Always{}, nil
	}
	switch c.Type {
	case "always", "":
		return core.Always{}, nil
	case "never":
		return core.Never{}, nil
	case "time_range":
		return core.TimeRange{Start: c.Start, End: c.End}, nil
	case "day_of_week":
		return core.DayOfWeek{Days: parseWeekdays(c.Days)}, nil
	case "app_running":
		return core.AppRunning{Name: c.Name}, nil
	case "app_frontmost":
		return core.AppFrontmost{Name: c.Name}, nil
	case "mode_is":
		return core.ModeIs{Name: c.Name}, nil
	case "and":
		subs, err := buildConditions(c.Conditions)
		if err != nil {
			return nil, err
		}
		return core.And{Conditions: subs}, nil
	case "or":
		subs, err := buildConditions(c.Conditions)
		if err != nil {
			return nil, err
		}
		return core.Or{Conditions: subs}, nil
	case "not":
		inner, err := buildCondition(c.Inner)
		if err != nil {
			return nil, err
		}
		return core.Not{Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unknown condition type %q", c.Type)
	}
}

func buildConditions(docs []conditionDoc) ([]core.Condition, error) {
	out := make([]core.Condition, 0, len(docs))
	for i := range docs {
		c, err := buildCondition(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

func parseWeekdays(names []string) []time.Weekday {
	out := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		if d, ok := weekdayNames[n]; ok {
			out = append(out, d)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt64(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}
