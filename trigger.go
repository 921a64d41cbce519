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

// TriggerKind names which ProcessedEvent variant a Trigger matches against.
type TriggerKind int

const (
	TriggerNote TriggerKind = iota
	TriggerNoteRelease
	TriggerLongPress
	TriggerDoubleTap
	TriggerChord
	TriggerEncoder
	TriggerAftertouchChanged
	TriggerPitchBendChanged
	TriggerCCChanged
	TriggerAxisDirection
)

// Trigger is the config-level predicate description: numeric ranges,
// velocity ranges, direction, and minimum magnitude constraints. Validate
// compiles it into a compiledTrigger exposing a pure matches function.
type Trigger struct {
	Kind TriggerKind

	// IdMin/IdMax bound the primary ElementId for every kind except Chord.
	// A single id is IdMin == IdMax.
	IdMin, IdMax ElementId

	// Ids is the exact membership set a Chord trigger requires.
	Ids []ElementId

	// VelocityMin/VelocityMax bound Note.RawVelocity. Defaults to 0..127.
	VelocityMin, VelocityMax uint8

	// Direction constrains Encoder/AxisDirection; DirNone means "any".
	Direction Direction

	// MinMagnitude is the minimum Encoder/AxisDirection magnitude to match.
	MinMagnitude uint8

	// MinHeldMs is the minimum LongPress.HeldMs to match (config duration_ms).
	MinHeldMs int64

	// MaxGapMs is the maximum DoubleTap.GapMs to match (config window_ms).
	MaxGapMs int64

	// MaxFormationMs is the maximum Chord.FormationMs to match (config window_ms).
	MaxFormationMs int64
}

// compiledTrigger is the validated, closure-free form of a Trigger paired
// with its Action, used inside a CompiledMap. Keeping it a plain struct
// (rather than a closure) keeps mapping inspection possible after compile,
// per the round-trip testable property in spec.md §8.
type compiledTrigger struct {
	trigger Trigger
	action  Action
}

// matches reports whether ev satisfies t. This is the pure predicate the
// mapping engine's fast path and fallback scan both call.
func (t Trigger) matches(ev ProcessedEvent) bool {
	switch t.Kind {
	case TriggerNote:
		n, ok := ev.(Note)
		if !ok || n.Id < t.IdMin || n.Id > t.IdMax {
			return false
		}
		vmin, vmax := t.VelocityMin, t.velocityMaxOrDefault()
		return n.RawVelocity >= vmin && n.RawVelocity <= vmax
	case TriggerNoteRelease:
		n, ok := ev.(NoteRelease)
		return ok && n.Id >= t.IdMin && n.Id <= t.IdMax
	case TriggerLongPress:
		n, ok := ev.(LongPress)
		return ok && n.Id >= t.IdMin && n.Id <= t.IdMax && n.HeldMs >= t.MinHeldMs
	case TriggerDoubleTap:
		n, ok := ev.(DoubleTap)
		return ok && n.Id >= t.IdMin && n.Id <= t.IdMax &&
			(t.MaxGapMs == 0 || n.GapMs <= t.MaxGapMs)
	case TriggerChord:
		c, ok := ev.(Chord)
		return ok && sameIdSet(c.Ids, t.Ids) &&
			(t.MaxFormationMs == 0 || c.FormationMs <= t.MaxFormationMs)
	case TriggerEncoder:
		n, ok := ev.(Encoder)
		if !ok || n.Id < t.IdMin || n.Id > t.IdMax {
			return false
		}
		if t.Direction != DirNone && n.Direction != t.Direction {
			return false
		}
		return n.Magnitude >= t.MinMagnitude
	case TriggerAftertouchChanged:
		n, ok := ev.(AftertouchChanged)
		return ok && n.Id >= t.IdMin && n.Id <= t.IdMax
	case TriggerPitchBendChanged:
		_, ok := ev.(PitchBendChanged)
		return ok
	case TriggerCCChanged:
		n, ok := ev.(CCChanged)
		return ok && n.CC >= t.IdMin && n.CC <= t.IdMax
	case TriggerAxisDirection:
		n, ok := ev.(AxisDirection)
		if !ok || n.Id < t.IdMin || n.Id > t.IdMax {
			return false
		}
		if t.Direction != DirNone && n.AxisDirection != t.Direction {
			return false
		}
		return n.Magnitude >= t.MinMagnitude
	default:
		return false
	}
}

func (t Trigger) velocityMaxOrDefault() uint8 {
	if t.VelocityMax == 0 && t.VelocityMin == 0 {
		return 127
	}
	return t.VelocityMax
}

func sameIdSet(a, b []ElementId) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[ElementId]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}

// primaryElementId returns the single ElementId this trigger can be bucketed
// on, and true, or (0, false) if it needs the O(n) fallback scan (Chord
// triggers spanning multiple ids, PitchBendChanged triggers, whose events
// carry no id, or any id range wider than a single id).
func (t Trigger) primaryElementId() (ElementId, bool) {
	if t.Kind == TriggerChord || t.Kind == TriggerPitchBendChanged {
		return 0, false
	}
	if t.IdMin == t.IdMax {
		return t.IdMin, true
	}
	return 0, false
}

// bucketOf maps an ElementId to its coarse namespace bucket. The compiled
// map's fast path does not use it: bucket indexes triggers by exact
// ElementId and scans everything else (see compiledmap.go).
func bucketOf(id ElementId) Namespace {
	return id.Namespace()
}
