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

package midiadapter

import (
	"bytes"
	"context"
	"testing"

	"github.com/padbridge/core"
)

func TestRunDecodesNoteOnAndRunningStatus(t *testing.T) {
	// Note-on ch0 note 36 vel 100, then running-status note-on note 40 vel 90
	// (status byte omitted), then an explicit note-off.
	stream := []byte{
		0x90, 36, 100,
		40, 90,
		0x80, 40, 0,
	}

	q := core.NewEventQueue(8)
	a := New(q, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Run(ctx, bytes.NewReader(stream)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	q.Close()

	var got []core.InputEvent
	for {
		ev, ok := q.Next()
		if !ok {
			break
		}
		got = append(got, ev)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d: %#v", len(got), got)
	}
	n0, ok := got[0].(core.NoteOn)
	if !ok || n0.Note != 36 || n0.Velocity != 100 {
		t.Fatalf("expected NoteOn{36,100}, got %#v", got[0])
	}
	n1, ok := got[1].(core.NoteOn)
	if !ok || n1.Note != 40 || n1.Velocity != 90 {
		t.Fatalf("expected running-status NoteOn{40,90}, got %#v", got[1])
	}
	if _, ok := got[2].(core.NoteOff); !ok {
		t.Fatalf("expected NoteOff, got %#v", got[2])
	}
}

func TestRunDecodesPitchBendCenter(t *testing.T) {
	stream := []byte{0xE0, 0x00, 0x40} // 0x40<<7 | 0x00 = 8192 -> centered at 0

	q := core.NewEventQueue(4)
	a := New(q, nil)
	if err := a.Run(context.Background(), bytes.NewReader(stream)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	q.Close()

	ev, ok := q.Next()
	if !ok {
		t.Fatal("expected a pitch bend event")
	}
	pb, ok := ev.(core.PitchBend)
	if !ok || pb.Value != 0 {
		t.Fatalf("expected centered PitchBend{0}, got %#v", ev)
	}
}
