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

// InputEvent is the unified algebra a protocol adapter produces. Every
// variant carries the monotonic timestamp the adapter observed the event
// at; the core only requires monotonicity and millisecond accuracy.
type InputEvent interface {
	// When returns the adapter-assigned timestamp of the event.
	When() time.Time
	isInputEvent()
}

// inputEventTime is embedded by every InputEvent variant, mirroring the
// EventTime pattern the teacher library uses for its own Event algebra.
type inputEventTime struct {
	t time.Time
}

func (e inputEventTime) When() time.Time { return e.t }
func (inputEventTime) isInputEvent()     {}

// NoteOn is a MIDI note-on, or a normalized gamepad ButtonDown at the
// protocol-adapter boundary. Velocity 0 is MIDI convention for "note off"
// and is handled specially by the processor (see Processor.Process).
type NoteOn struct {
	inputEventTime
	Note     ElementId
	Velocity uint8
	Channel  uint8
}

// NewNoteOn builds a NoteOn, clamping Velocity into 0..127.
func NewNoteOn(t time.Time, note ElementId, velocity int, channel uint8) NoteOn {
	return NoteOn{inputEventTime{t}, note, clampByte(velocity), channel}
}

// NoteOff is a MIDI note-off.
type NoteOff struct {
	inputEventTime
	Note    ElementId
	Channel uint8
}

func NewNoteOff(t time.Time, note ElementId, channel uint8) NoteOff {
	return NoteOff{inputEventTime{t}, note, channel}
}

// ControlChange is a MIDI CC message.
type ControlChange struct {
	inputEventTime
	CC      ElementId
	Value   uint8
	Channel uint8
}

func NewControlChange(t time.Time, cc ElementId, value int, channel uint8) ControlChange {
	return ControlChange{inputEventTime{t}, cc, clampByte(value), channel}
}

// PitchBend is a MIDI pitch-bend wheel message, in -8192..8191.
type PitchBend struct {
	inputEventTime
	Value   int16
	Channel uint8
}

func NewPitchBend(t time.Time, value int, channel uint8) PitchBend {
	if value < -8192 {
		value = -8192
	}
	if value > 8191 {
		value = 8191
	}
	return PitchBend{inputEventTime{t}, int16(value), channel}
}

// Aftertouch is either per-note or channel aftertouch pressure. Note is nil
// for channel-wide aftertouch.
type Aftertouch struct {
	inputEventTime
	Note     *ElementId
	Pressure uint8
	Channel  uint8
}

func NewAftertouch(t time.Time, note *ElementId, pressure int, channel uint8) Aftertouch {
	return Aftertouch{inputEventTime{t}, note, clampByte(pressure), channel}
}

// ButtonDown is a normalized gamepad button press. Id must fall in the
// ButtonMin..ButtonMax namespace; Pressure is a uniform synthesized
// velocity for gamepads that report no analog press depth.
type ButtonDown struct {
	inputEventTime
	Id       ElementId
	Pressure uint8
}

func NewButtonDown(t time.Time, id ElementId, pressure int) ButtonDown {
	return ButtonDown{inputEventTime{t}, id, clampByte(pressure)}
}

// ButtonUp is a normalized gamepad button release.
type ButtonUp struct {
	inputEventTime
	Id ElementId
}

func NewButtonUp(t time.Time, id ElementId) ButtonUp {
	return ButtonUp{inputEventTime{t}, id}
}

// AxisMove is a normalized gamepad axis reading, -127..127, already past
// the adapter's own 10% dead-zone reduction from the raw -1.0..1.0 float.
type AxisMove struct {
	inputEventTime
	Id    ElementId
	Value int8
}

func NewAxisMove(t time.Time, id ElementId, value int) AxisMove {
	return AxisMove{inputEventTime{t}, id, clampAxis(value)}
}
