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

// Package core is the event-processing core of an input-device mapping
// daemon. It normalizes MIDI and gamepad input into a single InputEvent
// algebra, turns live streams into gestures (long-press, double-tap, chord,
// encoder) via the Processor, matches the resulting ProcessedEvents against
// a compiled, hot-reloadable mapping table, and hands the matched Actions to
// an injected Executor.
//
// Protocol adapters (MIDI, HID), the LED device driver, and the host-state
// provider are capabilities the caller injects; this package never touches
// a device, a file, or the OS input-synthesis API directly.
package core
