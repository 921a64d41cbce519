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
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int64) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestProcessorVelocityBucketing(t *testing.T) {
	p := NewProcessor(DefaultAdvancedTimings())

	evs := p.Process(NewNoteOn(at(0), 36, 20, 0), at(0))
	n, ok := evs[0].(Note)
	if !ok || n.VelocityLevel != VelocitySoft {
		t.Fatalf("expected Soft note, got %#v", evs)
	}
	p.Process(NewNoteOff(at(10), 36, 0), at(10))

	evs = p.Process(NewNoteOn(at(20), 36, 100, 0), at(20))
	n, ok = evs[0].(Note)
	if !ok || n.VelocityLevel != VelocityHard {
		t.Fatalf("expected Hard note, got %#v", evs)
	}
}

func TestProcessorVelocityZeroIsRelease(t *testing.T) {
	p := NewProcessor(DefaultAdvancedTimings())
	p.Process(NewNoteOn(at(0), 36, 64, 0), at(0))
	evs := p.Process(NewNoteOn(at(5), 36, 0, 0), at(5))
	if len(evs) != 1 {
		t.Fatalf("expected exactly one event, got %#v", evs)
	}
	if _, ok := evs[0].(NoteRelease); !ok {
		t.Fatalf("expected NoteRelease for velocity-0 NoteOn, got %#v", evs[0])
	}
}

func TestProcessorLongPress(t *testing.T) {
	p := NewProcessor(AdvancedTimings{LongPressThresholdMs: 1000, DoubleTapWindowMs: 300, ChordWindowMs: 60, EncoderIdleMs: 250})
	p.Process(NewNoteOn(at(0), 36, 64, 0), at(0))

	evs := p.Tick(at(1000))
	if len(evs) != 1 {
		t.Fatalf("expected LongPress at exactly the threshold, got %#v", evs)
	}
	if lp, ok := evs[0].(LongPress); !ok || lp.HeldMs != 1000 {
		t.Fatalf("expected LongPress{HeldMs:1000}, got %#v", evs[0])
	}

	// Must not refire on a later tick.
	if evs := p.Tick(at(1500)); len(evs) != 0 {
		t.Fatalf("expected no refire, got %#v", evs)
	}

	p.Process(NewNoteOff(at(1200), 36, 0), at(1200))
}

func TestProcessorLongPressSuppressedByEarlyRelease(t *testing.T) {
	p := NewProcessor(AdvancedTimings{LongPressThresholdMs: 1000, DoubleTapWindowMs: 300, ChordWindowMs: 60, EncoderIdleMs: 250})
	p.Process(NewNoteOn(at(0), 36, 64, 0), at(0))
	p.Process(NewNoteOff(at(500), 36, 0), at(500))
	if evs := p.Tick(at(1000)); len(evs) != 0 {
		t.Fatalf("expected no LongPress after early release, got %#v", evs)
	}
}

func TestProcessorDoubleTap(t *testing.T) {
	p := NewProcessor(AdvancedTimings{LongPressThresholdMs: 1000, DoubleTapWindowMs: 300, ChordWindowMs: 60, EncoderIdleMs: 250})
	p.Process(NewNoteOn(at(0), 40, 64, 0), at(0))
	p.Process(NewNoteOff(at(50), 40, 0), at(50))

	evs := p.Process(NewNoteOn(at(250), 40, 64, 0), at(250))
	var sawNote, sawTap bool
	for _, ev := range evs {
		switch tv := ev.(type) {
		case Note:
			sawNote = true
		case DoubleTap:
			sawTap = true
			if tv.GapMs != 200 {
				t.Errorf("expected GapMs 200, got %d", tv.GapMs)
			}
		}
	}
	if !sawNote || !sawTap {
		t.Fatalf("expected both Note and DoubleTap, got %#v", evs)
	}
}

func TestProcessorChord(t *testing.T) {
	p := NewProcessor(AdvancedTimings{LongPressThresholdMs: 1000, DoubleTapWindowMs: 300, ChordWindowMs: 100, EncoderIdleMs: 250})
	var all []ProcessedEvent
	all = append(all, p.Process(NewNoteOn(at(0), 60, 64, 0), at(0))...)
	all = append(all, p.Process(NewNoteOn(at(30), 64, 64, 0), at(30))...)
	all = append(all, p.Process(NewNoteOn(at(60), 67, 64, 0), at(60))...)

	var chords []Chord
	for _, ev := range all {
		if c, ok := ev.(Chord); ok {
			chords = append(chords, c)
		}
	}
	if len(chords) != 1 {
		t.Fatalf("expected exactly one Chord across the 3-note press, got %#v", chords)
	}
	if len(chords[0].Ids) != 2 {
		t.Errorf("expected the chord to form at the 2-id pair, got %v", chords[0].Ids)
	}

	// No second chord emission while any chord-consumed id remains held,
	// even though a third, not-yet-consumed id joins the buffer.
	evs := p.Process(NewNoteOn(at(70), 67, 80, 0), at(70))
	for _, ev := range evs {
		if _, ok := ev.(Chord); ok {
			t.Fatalf("unexpected second Chord before any release: %#v", evs)
		}
	}

	// Releasing one chord-consumed id and re-pressing still does not
	// re-form a chord while the other consumed id is still held.
	p.Process(NewNoteOff(at(80), 60, 0), at(80))
	evs = p.Process(NewNoteOn(at(90), 60, 64, 0), at(90))
	for _, ev := range evs {
		if _, ok := ev.(Chord); ok {
			t.Fatalf("unexpected Chord while id 64 is still held from the original chord: %#v", evs)
		}
	}

	// Once every originally chord-consumed id has released, re-pressing forms
	// a new chord. Id 67 is still held inside the window, so the chord can
	// already form on the first re-press.
	p.Process(NewNoteOff(at(100), 64, 0), at(100))
	p.Process(NewNoteOff(at(110), 60, 0), at(110))
	evs = p.Process(NewNoteOn(at(120), 60, 64, 0), at(120))
	evs = append(evs, p.Process(NewNoteOn(at(125), 64, 64, 0), at(125))...)
	var gotNew bool
	for _, ev := range evs {
		if _, ok := ev.(Chord); ok {
			gotNew = true
		}
	}
	if !gotNew {
		t.Fatalf("expected a new Chord once all previously-consumed ids released, got %#v", evs)
	}
}

func TestProcessorEncoderDelta(t *testing.T) {
	p := NewProcessor(DefaultAdvancedTimings())
	evs := p.Process(NewControlChange(at(0), 20, 10, 0), at(0))
	if len(evs) != 1 {
		t.Fatalf("first CC should only emit CCChanged, got %#v", evs)
	}
	evs = p.Process(NewControlChange(at(10), 20, 14, 0), at(10))
	var enc *Encoder
	for i := range evs {
		if e, ok := evs[i].(Encoder); ok {
			enc = &e
		}
	}
	if enc == nil || enc.Direction != DirCW || enc.Magnitude != 4 {
		t.Fatalf("expected Encoder{CW,4}, got %#v", evs)
	}
}

func TestProcessorAxisDeadZone(t *testing.T) {
	p := NewProcessor(AdvancedTimings{DeadZonePercent: 10})
	evs := p.Process(NewAxisMove(at(0), 160, 5), at(0))
	if len(evs) != 0 {
		t.Fatalf("expected axis move within dead zone to emit nothing, got %#v", evs)
	}
	evs = p.Process(NewAxisMove(at(10), 160, 100), at(10))
	if len(evs) != 1 {
		t.Fatalf("expected one AxisDirection past dead zone, got %#v", evs)
	}
	if ad, ok := evs[0].(AxisDirection); !ok || ad.AxisDirection != DirRight {
		t.Fatalf("expected AxisDirection{Right}, got %#v", evs[0])
	}
}
