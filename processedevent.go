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

// VelocityLevel buckets a raw 0..127 velocity for trigger matching.
type VelocityLevel int

const (
	VelocitySoft VelocityLevel = iota
	VelocityMedium
	VelocityHard
)

func (v VelocityLevel) String() string {
	switch v {
	case VelocitySoft:
		return "Soft"
	case VelocityMedium:
		return "Medium"
	case VelocityHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// velocityLevel bucketizes a raw 0..127 velocity into Soft(0..40),
// Medium(41..80), Hard(81..127).
func velocityLevel(raw uint8) VelocityLevel {
	switch {
	case raw <= 40:
		return VelocitySoft
	case raw <= 80:
		return VelocityMedium
	default:
		return VelocityHard
	}
}

// Direction is an encoder or axis cardinal direction.
type Direction int

const (
	DirNone Direction = iota
	DirCW
	DirCCW
	DirUp
	DirDown
	DirLeft
	DirRight
	DirCenter
)

// ProcessedEvent is the output algebra of the Processor: a gesture or a
// normalized continuous-channel change, consumed by the mapping engine and
// not retained past a single dispatch.
type ProcessedEvent interface {
	When() time.Time
	isProcessedEvent()
}

type processedEventTime struct{ t time.Time }

func (e processedEventTime) When() time.Time { return e.t }
func (processedEventTime) isProcessedEvent() {}

// Note fires on every NoteOn/ButtonDown with nonzero velocity.
type Note struct {
	processedEventTime
	Id            ElementId
	VelocityLevel VelocityLevel
	RawVelocity   uint8
}

// NoteRelease fires on every NoteOff/ButtonUp.
type NoteRelease struct {
	processedEventTime
	Id ElementId
}

// LongPress fires once when a press has been held at least
// long_press_threshold_ms without an intervening release.
type LongPress struct {
	processedEventTime
	Id      ElementId
	HeldMs  int64
}

// DoubleTap fires on the second press whose prior release was within
// double_tap_window_ms.
type DoubleTap struct {
	processedEventTime
	Id    ElementId
	GapMs int64
}

// Chord fires once when two or more ids become simultaneously held inside
// chord_window_ms. No further Chord is emitted while an id from it is still
// held and inside the chord window.
type Chord struct {
	processedEventTime
	Ids          []ElementId
	FormationMs  int64
}

// Encoder fires on any nonzero change between two successive values of the
// same CC; Magnitude is the size of that change. Axis moves do not produce
// Encoder events (see AxisDirection).
type Encoder struct {
	processedEventTime
	Id        ElementId
	Direction Direction // DirCW or DirCCW
	Magnitude uint8
}

// AftertouchChanged is a direct passthrough of Aftertouch, undebounced.
type AftertouchChanged struct {
	processedEventTime
	Id       ElementId
	Pressure uint8
}

// PitchBendChanged is a direct passthrough of PitchBend, undebounced.
type PitchBendChanged struct {
	processedEventTime
	Value int16
}

// CCChanged is a direct passthrough of every CC message, emitted alongside
// any Encoder derived from the same message.
type CCChanged struct {
	processedEventTime
	CC    ElementId
	Value uint8
}

// AxisDirection fires on an AxisMove past dead-zone, giving a cardinal
// direction and magnitude.
type AxisDirection struct {
	processedEventTime
	Id            ElementId
	AxisDirection Direction
	Magnitude     uint8
}

func newNote(t time.Time, id ElementId, raw uint8) Note {
	return Note{processedEventTime{t}, id, velocityLevel(raw), raw}
}
func newNoteRelease(t time.Time, id ElementId) NoteRelease {
	return NoteRelease{processedEventTime{t}, id}
}
func newLongPress(t time.Time, id ElementId, heldMs int64) LongPress {
	return LongPress{processedEventTime{t}, id, heldMs}
}
func newDoubleTap(t time.Time, id ElementId, gapMs int64) DoubleTap {
	return DoubleTap{processedEventTime{t}, id, gapMs}
}
func newChord(t time.Time, ids []ElementId, formationMs int64) Chord {
	return Chord{processedEventTime{t}, ids, formationMs}
}
func newEncoder(t time.Time, id ElementId, dir Direction, magnitude uint8) Encoder {
	return Encoder{processedEventTime{t}, id, dir, magnitude}
}
func newAftertouchChanged(t time.Time, id ElementId, pressure uint8) AftertouchChanged {
	return AftertouchChanged{processedEventTime{t}, id, pressure}
}
func newPitchBendChanged(t time.Time, value int16) PitchBendChanged {
	return PitchBendChanged{processedEventTime{t}, value}
}
func newCCChanged(t time.Time, cc ElementId, value uint8) CCChanged {
	return CCChanged{processedEventTime{t}, cc, value}
}
func newAxisDirection(t time.Time, id ElementId, dir Direction, magnitude uint8) AxisDirection {
	return AxisDirection{processedEventTime{t}, id, dir, magnitude}
}
