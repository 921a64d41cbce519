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

import "sort"

// bucket is one mode's (or the global set's) compiled mappings: an ordered
// list of compiledTriggers in declaration order, plus an index from a
// single primary ElementId to the positions in that list whose trigger
// matches on exactly that id. Triggers with no single primary id (Chord,
// PitchBendChanged, id ranges) live only in the ordered list and are
// reached via the fallback scan.
type bucket struct {
	ordered  []compiledTrigger
	byId     map[ElementId][]int
	fallback []int // indices of ordered entries with no single primary id
}

func newBucket(mappings []Mapping) bucket {
	b := bucket{byId: make(map[ElementId][]int)}
	for _, m := range mappings {
		idx := len(b.ordered)
		b.ordered = append(b.ordered, compiledTrigger{trigger: m.Trigger, action: m.Action})
		if id, ok := m.Trigger.primaryElementId(); ok {
			b.byId[id] = append(b.byId[id], idx)
		} else {
			b.fallback = append(b.fallback, idx)
		}
	}
	return b
}

// candidates returns the ordered-list indices worth checking against ev,
// in declaration order: those bucketed on ev's primary id (if any) merged
// with the always-scanned fallback set.
func (b bucket) candidates(ev ProcessedEvent) []int {
	id, hasId := processedEventPrimaryId(ev)
	if !hasId {
		return b.fallback
	}
	byId := b.byId[id]
	if len(byId) == 0 {
		return b.fallback
	}
	merged := make([]int, 0, len(byId)+len(b.fallback))
	merged = append(merged, byId...)
	merged = append(merged, b.fallback...)
	sort.Ints(merged)
	return merged
}

// processedEventPrimaryId extracts the single ElementId a ProcessedEvent is
// keyed on, for bucketing. Chord and PitchBendChanged carry none.
func processedEventPrimaryId(ev ProcessedEvent) (ElementId, bool) {
	switch v := ev.(type) {
	case Note:
		return v.Id, true
	case NoteRelease:
		return v.Id, true
	case LongPress:
		return v.Id, true
	case DoubleTap:
		return v.Id, true
	case Encoder:
		return v.Id, true
	case AftertouchChanged:
		return v.Id, true
	case CCChanged:
		return v.CC, true
	case AxisDirection:
		return v.Id, true
	default:
		return 0, false
	}
}

// CompiledMap is the immutable, validated result of compiling a Config. It
// is published to readers via an atomic pointer by the reload coordinator;
// once built it is never mutated.
type CompiledMap struct {
	modeOrder []string
	modeIndex map[string]int
	perMode   map[string]bucket
	global    bucket
	timings   AdvancedTimings
	ledScheme SchemeName
	modeColor map[string]ModeColor
}

// ModeColor is the resolved per-mode LED color, for Mode-change feedback.
type ModeColor struct {
	R, G, B uint8
}

// Modes returns the compiled mode names in declaration order.
func (m *CompiledMap) Modes() []string {
	out := make([]string, len(m.modeOrder))
	copy(out, m.modeOrder)
	return out
}

// HasMode reports whether name is a known mode.
func (m *CompiledMap) HasMode(name string) bool {
	_, ok := m.modeIndex[name]
	return ok
}

// InitialMode returns the first declared mode, or "" if there are none.
func (m *CompiledMap) InitialMode() string {
	if len(m.modeOrder) == 0 {
		return ""
	}
	return m.modeOrder[0]
}

// Timings returns the compiled gesture thresholds.
func (m *CompiledMap) Timings() AdvancedTimings { return m.timings }

// LedScheme returns the configured default lighting scheme.
func (m *CompiledMap) LedScheme() SchemeName { return m.ledScheme }

// ModeColorFor returns the resolved LED color for a mode.
func (m *CompiledMap) ModeColorFor(mode string) (ModeColor, bool) {
	c, ok := m.modeColor[mode]
	return c, ok
}

// Mappings returns the (trigger, action) pairs for a mode (or the global
// set, for name ""), in declaration order — the round-trip inspection
// surface spec.md §8 calls for.
func (m *CompiledMap) Mappings(mode string) []Mapping {
	var b bucket
	if mode == "" {
		b = m.global
	} else {
		b = m.perMode[mode]
	}
	out := make([]Mapping, len(b.ordered))
	for i, ct := range b.ordered {
		out[i] = Mapping{Trigger: ct.trigger, Action: ct.action}
	}
	return out
}
