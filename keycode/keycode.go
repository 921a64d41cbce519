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

// Package keycode is a closed, platform-neutral enumeration of logical key
// codes and mouse buttons. A platform adapter maps these onto native
// input-synthesis codes; keys with no platform equivalent are a documented
// no-op for that adapter. Keeping this table outside the core package means
// the core never imports an OS input-synthesis type (Design Note: Platform-
// specific key/button types → logical table).
package keycode

import "fmt"

// Key is a logical key code. The zero value is invalid; use KeyNone to
// represent "no key" explicitly where a config slot is optional.
type Key int

const (
	KeyNone Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits (top row)
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function row
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Whitespace / editing
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEsc
	KeyInsert

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn

	// Modifiers, reported as standalone keys for mappings that trigger on
	// the modifier itself (e.g. a chord including a bare Shift tap)
	KeyShiftLeft
	KeyShiftRight
	KeyCtrlLeft
	KeyCtrlRight
	KeyAltLeft
	KeyAltRight
	KeyMetaLeft
	KeyMetaRight
	KeyCapsLock

	// Punctuation
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyComma
	KeyPeriod
	KeySlash
	KeyGrave

	// Numpad
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNumDecimal
	KeyNumEnter
	KeyNumPlus
	KeyNumMinus
	KeyNumMultiply
	KeyNumDivide

	// Media / system, common automation targets
	KeyVolumeUp
	KeyVolumeDown
	KeyVolumeMute
	KeyMediaPlayPause
	KeyMediaNext
	KeyMediaPrev
	KeyPrintScreen
	KeyPause

	keyCount // sentinel, not a valid key
)

var keyNames = [...]string{
	KeyNone: "None", KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E",
	KeyF: "F", KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K",
	KeyL: "L", KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q",
	KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W",
	KeyX: "X", KeyY: "Y", KeyZ: "Z",
	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
	KeyF11: "F11", KeyF12: "F12",
	KeySpace: "Space", KeyEnter: "Enter", KeyTab: "Tab",
	KeyBackspace: "Backspace", KeyDelete: "Delete", KeyEsc: "Esc",
	KeyInsert: "Insert",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyHome: "Home", KeyEnd: "End", KeyPgUp: "PgUp", KeyPgDn: "PgDn",
	KeyShiftLeft: "ShiftLeft", KeyShiftRight: "ShiftRight",
	KeyCtrlLeft: "CtrlLeft", KeyCtrlRight: "CtrlRight",
	KeyAltLeft: "AltLeft", KeyAltRight: "AltRight",
	KeyMetaLeft: "MetaLeft", KeyMetaRight: "MetaRight",
	KeyCapsLock: "CapsLock",
	KeyMinus: "Minus", KeyEqual: "Equal", KeyLeftBracket: "LeftBracket",
	KeyRightBracket: "RightBracket", KeyBackslash: "Backslash",
	KeySemicolon: "Semicolon", KeyQuote: "Quote", KeyComma: "Comma",
	KeyPeriod: "Period", KeySlash: "Slash", KeyGrave: "Grave",
	KeyNum0: "Num0", KeyNum1: "Num1", KeyNum2: "Num2", KeyNum3: "Num3",
	KeyNum4: "Num4", KeyNum5: "Num5", KeyNum6: "Num6", KeyNum7: "Num7",
	KeyNum8: "Num8", KeyNum9: "Num9", KeyNumDecimal: "NumDecimal",
	KeyNumEnter: "NumEnter", KeyNumPlus: "NumPlus", KeyNumMinus: "NumMinus",
	KeyNumMultiply: "NumMultiply", KeyNumDivide: "NumDivide",
	KeyVolumeUp: "VolumeUp", KeyVolumeDown: "VolumeDown",
	KeyVolumeMute: "VolumeMute", KeyMediaPlayPause: "MediaPlayPause",
	KeyMediaNext: "MediaNext", KeyMediaPrev: "MediaPrev",
	KeyPrintScreen: "PrintScreen", KeyPause: "Pause",
}

// String renders the logical key name used in config files and logs.
func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) && keyNames[k] != "" {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey looks up a Key by its config-file name (case-sensitive, matching
// String()). The zero Key and false are returned for an unknown name.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return KeyNone, false
}

// Valid reports whether k is one of the closed enumeration's named keys.
func (k Key) Valid() bool {
	return k > KeyNone && int(k) < int(keyCount) && keyNames[k] != ""
}

// MouseButton is a logical mouse button; the core only ever needs these
// three regardless of how many buttons the physical device exposes.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	default:
		return "None"
	}
}

// ParseMouseButton looks up a MouseButton by its config-file name.
func ParseMouseButton(name string) (MouseButton, bool) {
	switch name {
	case "Left":
		return MouseButtonLeft, true
	case "Right":
		return MouseButtonRight, true
	case "Middle":
		return MouseButtonMiddle, true
	default:
		return MouseButtonNone, false
	}
}
