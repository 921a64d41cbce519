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

import "testing"

func TestEventQueueFIFO(t *testing.T) {
	q := NewEventQueue(4)
	q.Submit(NewNoteOn(at(0), 1, 1, 0))
	q.Submit(NewNoteOn(at(1), 2, 1, 0))
	q.Submit(NewNoteOn(at(2), 3, 1, 0))

	for _, want := range []ElementId{1, 2, 3} {
		ev, ok := q.Next()
		if !ok {
			t.Fatal("expected an event")
		}
		if n, ok := ev.(NoteOn); !ok || n.Note != want {
			t.Fatalf("expected NoteOn{%d}, got %#v", want, ev)
		}
	}
}

func TestEventQueueDropsOldestWhenFull(t *testing.T) {
	q := NewEventQueue(2)
	q.Submit(NewNoteOn(at(0), 1, 1, 0))
	q.Submit(NewNoteOn(at(1), 2, 1, 0))

	dropped, wasDropped := q.TrySubmitDroppingOldest(NewNoteOn(at(2), 3, 1, 0))
	if !wasDropped {
		t.Fatal("expected a drop when the queue was full")
	}
	if n, ok := dropped.(NoteOn); !ok || n.Note != 1 {
		t.Fatalf("expected the oldest event (id 1) to be dropped, got %#v", dropped)
	}

	ev, _ := q.Next()
	if n := ev.(NoteOn); n.Note != 2 {
		t.Fatalf("expected id 2 next, got %#v", ev)
	}
	ev, _ = q.Next()
	if n := ev.(NoteOn); n.Note != 3 {
		t.Fatalf("expected id 3 next, got %#v", ev)
	}
}
