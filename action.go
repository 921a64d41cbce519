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

import "github.com/padbridge/core/keycode"

// MaxActionDepth bounds Sequence/Repeat/Conditional nesting (Design Note:
// Cyclic nested actions → arena or box with depth cap). The validator
// rejects configs that nest deeper than this.
const MaxActionDepth = 8

// Action is the sum type of host-side effects a mapping can dispatch.
type Action interface {
	isAction()
}

type actionBase struct{}

func (actionBase) isAction() {}

// Keystroke synthesizes a key chord: Modifiers held, then Keys pressed.
type Keystroke struct {
	actionBase
	Keys      []keycode.Key
	Modifiers []keycode.Key
}

// Text types a literal string, e.g. via an input-method injection API.
type Text struct {
	actionBase
	String string
}

// MouseClick clicks a logical mouse button, optionally at an absolute
// position; nil X/Y means "at the current cursor position".
type MouseClick struct {
	actionBase
	Button keycode.MouseButton
	X, Y   *int
}

// Launch starts an application by platform-adapter-resolved target name.
type Launch struct {
	actionBase
	Target string
}

// Shell runs a command with no shell interpreter involved; see shellparse.go
// for the tokenization and metacharacter-denylist contract.
type Shell struct {
	actionBase
	Command string
}

// VolumeOp names a VolumeControl operation.
type VolumeOp int

const (
	VolumeUp VolumeOp = iota
	VolumeDown
	VolumeMute
	VolumeSet
)

// VolumeControl adjusts host output volume. Level is only meaningful (and
// required) for VolumeSet, 0..100.
type VolumeControl struct {
	actionBase
	Op    VolumeOp
	Level int
}

// ModeChange switches the mapping engine's current mode. MappingEngine.
// Dispatch commits it only after trigger selection for the event that
// produced it is done, so it governs the next event's dispatch (§4.2 "Mode
// change as action" — post-commit).
type ModeChange struct {
	actionBase
	Target string
}

// Sequence runs Steps in order inside the executor, stopping at the first
// Failed step unless that step is marked NonFatal.
type Sequence struct {
	actionBase
	Steps []SequenceStep
}

// SequenceStep is one element of a Sequence. NonFatal lets the sequence
// continue past a Failed outcome for this step.
type SequenceStep struct {
	Action   Action
	NonFatal bool
}

// Delay suspends the executor cooperatively for Ms milliseconds.
type Delay struct {
	actionBase
	Ms int64
}

// Repeat runs Inner Count times (Count >= 1) with GapMs between iterations
// and no trailing gap.
type Repeat struct {
	actionBase
	Inner Action
	Count int
	GapMs int64
}

// Conditional evaluates When against the dispatch context and runs Then, or
// Else if present and When was false.
type Conditional struct {
	actionBase
	When Condition
	Then Action
	Else Action // nil is permitted: "do nothing"
}
