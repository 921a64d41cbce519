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

import "time"

// pendingPress is the open press record kept per ElementId while a note or
// button is held, used to schedule a LongPress and to feed double-tap gap
// measurement on release.
type pendingPress struct {
	startedAt      time.Time
	velocity       uint8
	longPressFired bool
}

// chordEntry is one press contributing to the chord-formation window.
type chordEntry struct {
	id        ElementId
	startedAt time.Time
}

// Processor turns a linear InputEvent stream into ProcessedEvent gestures.
// It owns all gesture state and has a single-threaded contract: nothing
// outside the owning processor goroutine may call Process or Tick
// concurrently, and nothing reads its internals directly.
type Processor struct {
	timings AdvancedTimings

	pending     map[ElementId]*pendingPress
	lastRelease map[ElementId]time.Time
	lastCC      map[ElementId]uint8
	lastCCAt    map[ElementId]time.Time

	chordBuffer   []chordEntry
	chordConsumed map[ElementId]bool
}

// NewProcessor builds a Processor with the given initial timings.
func NewProcessor(timings AdvancedTimings) *Processor {
	return &Processor{
		timings:       timings,
		pending:       make(map[ElementId]*pendingPress),
		lastRelease:   make(map[ElementId]time.Time),
		lastCC:        make(map[ElementId]uint8),
		lastCCAt:      make(map[ElementId]time.Time),
		chordConsumed: make(map[ElementId]bool),
	}
}

// SetTimings updates the gesture thresholds. Already-pending state is
// evaluated against the new thresholds on the next Process/Tick call.
func (p *Processor) SetTimings(t AdvancedTimings) {
	p.timings = t
}

// Process converts one InputEvent into zero or more ProcessedEvents. It is
// pure with respect to the clock and I/O free; all state mutation is
// confined to p's own maps and buffers.
func (p *Processor) Process(event InputEvent, now time.Time) []ProcessedEvent {
	switch e := event.(type) {
	case NoteOn:
		if e.Velocity == 0 {
			// MIDI convention: a velocity-0 NoteOn is a NoteOff.
			return p.handleRelease(e.Note, now)
		}
		return p.handlePress(e.Note, p.timings.VelocityCurve.Apply(e.Velocity), now)
	case NoteOff:
		return p.handleRelease(e.Note, now)
	case ButtonDown:
		if e.Pressure == 0 {
			return p.handleRelease(e.Id, now)
		}
		return p.handlePress(e.Id, p.timings.VelocityCurve.Apply(e.Pressure), now)
	case ButtonUp:
		return p.handleRelease(e.Id, now)
	case ControlChange:
		return p.handleCC(e.CC, e.Value, now)
	case AxisMove:
		return p.handleAxis(e.Id, e.Value, now)
	case PitchBend:
		return []ProcessedEvent{newPitchBendChanged(now, e.Value)}
	case Aftertouch:
		id := ElementId(0)
		if e.Note != nil {
			id = *e.Note
		}
		return []ProcessedEvent{newAftertouchChanged(now, id, e.Pressure)}
	default:
		return nil
	}
}

// Tick drains deferred emissions: long-press fires and chord-window
// closures. Callers must invoke it periodically (at least every 20 ms)
// while idle for gestures to complete; Process also keeps the chord buffer
// pruned on every press.
func (p *Processor) Tick(now time.Time) []ProcessedEvent {
	var events []ProcessedEvent
	for id, pp := range p.pending {
		if pp.longPressFired {
			continue
		}
		heldMs := now.Sub(pp.startedAt).Milliseconds()
		if heldMs >= p.timings.LongPressThresholdMs {
			events = append(events, newLongPress(now, id, heldMs))
			pp.longPressFired = true
		}
	}
	p.pruneChord(now)
	for cc, at := range p.lastCCAt {
		if now.Sub(at).Milliseconds() >= p.timings.EncoderIdleMs {
			delete(p.lastCC, cc)
			delete(p.lastCCAt, cc)
		}
	}
	return events
}

func (p *Processor) handlePress(id ElementId, velocity uint8, now time.Time) []ProcessedEvent {
	events := []ProcessedEvent{newNote(now, id, velocity)}

	if lastAt, ok := p.lastRelease[id]; ok {
		gap := now.Sub(lastAt).Milliseconds()
		if gap <= p.timings.DoubleTapWindowMs {
			events = append(events, newDoubleTap(now, id, gap))
			delete(p.lastRelease, id)
		}
	}

	p.pending[id] = &pendingPress{startedAt: now, velocity: velocity}

	p.chordBuffer = append(p.chordBuffer, chordEntry{id: id, startedAt: now})
	p.pruneChord(now)
	if ev, ok := p.maybeChord(now); ok {
		events = append(events, ev)
	}

	return events
}

func (p *Processor) handleRelease(id ElementId, now time.Time) []ProcessedEvent {
	delete(p.pending, id)
	p.lastRelease[id] = now
	delete(p.chordConsumed, id)
	return []ProcessedEvent{newNoteRelease(now, id)}
}

// pruneChord drops chord-buffer entries that have aged out of the current
// chord_window_ms, keeping the process-wide buffer O(active elements).
func (p *Processor) pruneChord(now time.Time) {
	cutoff := now.Add(-time.Duration(p.timings.ChordWindowMs) * time.Millisecond)
	i := 0
	for i < len(p.chordBuffer) && p.chordBuffer[i].startedAt.Before(cutoff) {
		i++
	}
	if i > 0 {
		p.chordBuffer = p.chordBuffer[i:]
	}
}

// maybeChord reports whether the current chord buffer forms a new,
// not-yet-emitted chord: at least two distinct currently held ids, none of
// which is still chord-consumed from a prior formation. The aggregator stays in its
// Consumed state — and suppresses re-emission — for as long as any id from
// that earlier chord remains held; it only returns to Quiescent once every
// chord-consumed id has released (handleRelease clears chordConsumed per
// id), per §4.7's chord aggregator state machine.
func (p *Processor) maybeChord(now time.Time) (ProcessedEvent, bool) {
	var ids []ElementId
	var first time.Time
	seen := make(map[ElementId]bool)
	for _, e := range p.chordBuffer {
		if _, held := p.pending[e.id]; !held {
			continue
		}
		if !seen[e.id] {
			if len(ids) == 0 {
				first = e.startedAt
			}
			seen[e.id] = true
			ids = append(ids, e.id)
		}
	}
	if len(ids) < 2 {
		return nil, false
	}
	for _, id := range ids {
		if p.chordConsumed[id] {
			return nil, false
		}
	}
	for _, id := range ids {
		p.chordConsumed[id] = true
	}
	formationMs := now.Sub(first).Milliseconds()
	return newChord(now, ids, formationMs), true
}

func (p *Processor) handleCC(cc ElementId, value uint8, now time.Time) []ProcessedEvent {
	var events []ProcessedEvent
	if last, ok := p.lastCC[cc]; ok {
		delta := int(value) - int(last)
		if delta != 0 {
			dir := DirCW
			if delta < 0 {
				dir = DirCCW
				delta = -delta
			}
			events = append(events, newEncoder(now, cc, dir, clampByte(delta)))
		}
	}
	p.lastCC[cc] = value
	p.lastCCAt[cc] = now
	events = append(events, newCCChanged(now, cc, value))
	return events
}

// handleAxis converts a dead-zone-filtered axis reading into a cardinal
// direction. Even-offset axis ids (relative to AxisMin) are treated as the
// horizontal member of a stick pair, odd-offset as vertical; an adapter
// that only has one axis per control should assign ids accordingly.
func (p *Processor) handleAxis(id ElementId, value int8, now time.Time) []ProcessedEvent {
	mag := int(value)
	if mag < 0 {
		mag = -mag
	}
	threshold := 127 * int(p.timings.DeadZonePercent) / 100
	if mag <= threshold {
		return nil
	}
	horizontal := (id-AxisMin)%2 == 0
	var dir Direction
	switch {
	case horizontal && value > 0:
		dir = DirRight
	case horizontal:
		dir = DirLeft
	case value > 0:
		dir = DirDown
	default:
		dir = DirUp
	}
	return []ProcessedEvent{newAxisDirection(now, id, dir, clampByte(mag))}
}
