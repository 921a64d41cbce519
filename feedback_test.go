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
	"sync"
	"testing"
	"time"

	"github.com/padbridge/core/ledcolor"
)

type fakeLEDDevice struct {
	mu   sync.Mutex
	last map[ElementId]ledcolor.RGB
}

func newFakeLEDDevice() *fakeLEDDevice {
	return &fakeLEDDevice{last: make(map[ElementId]ledcolor.RGB)}
}

func (d *fakeLEDDevice) Apply(cmd FeedbackCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch c := cmd.(type) {
	case SetPad:
		d.last[c.Id] = c.Color
	case ClearAllPads:
		d.last = make(map[ElementId]ledcolor.RGB)
	}
	return nil
}

func (d *fakeLEDDevice) colorOf(id ElementId) ledcolor.RGB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last[id]
}

func TestFeedbackReactivePressAndFade(t *testing.T) {
	dev := newFakeLEDDevice()
	m := NewFeedbackManager(dev, []ElementId{36}, nil)

	m.OnPadPress(36, VelocityHard, 127, at(0))
	if dev.colorOf(36) == ledcolor.Off {
		t.Fatal("expected a non-off color commanded on press")
	}

	m.OnPadRelease(36, at(0))
	completed := m.Update(at(500))
	if len(completed) != 0 {
		t.Fatalf("expected no completion at half the fade horizon, got %v", completed)
	}
	if dev.colorOf(36) == ledcolor.Off {
		t.Fatal("expected a dimmed but nonzero color mid-fade")
	}

	completed = m.Update(at(1000))
	if len(completed) != 1 || completed[0] != 36 {
		t.Fatalf("expected id 36 to complete its fade at 1000ms, got %v", completed)
	}
	if dev.colorOf(36) != ledcolor.Off {
		t.Fatalf("expected Off after fade completes, got %v", dev.colorOf(36))
	}
}

func TestFeedbackSchemeSwitchClearsReactiveRecords(t *testing.T) {
	dev := newFakeLEDDevice()
	m := NewFeedbackManager(dev, []ElementId{36}, nil)
	m.OnPadPress(36, VelocitySoft, 20, at(0))
	m.OnPadRelease(36, at(0))

	m.SetScheme(SchemeStatic)
	m.OnModeChange("Default", ModeColor{R: 10, G: 20, B: 30})
	m.Update(at(10))

	m.SetScheme(SchemeReactive)
	if completed := m.Update(at(2000)); len(completed) != 0 {
		t.Fatalf("expected no stale Reactive record to surface after a scheme switch, got %v", completed)
	}
}

func TestFeedbackClear(t *testing.T) {
	dev := newFakeLEDDevice()
	m := NewFeedbackManager(dev, []ElementId{36, 37}, nil)
	m.OnPadPress(36, VelocityMedium, 60, at(0))
	m.Clear()
	if dev.colorOf(36) != ledcolor.Off {
		t.Fatalf("expected Clear to turn pads off, got %v", dev.colorOf(36))
	}
}

func TestFeedbackStaticUsesModeColor(t *testing.T) {
	dev := newFakeLEDDevice()
	m := NewFeedbackManager(dev, []ElementId{36}, nil)
	m.SetScheme(SchemeStatic)
	m.OnModeChange("Dev", ModeColor{R: 50, G: 60, B: 70})
	m.Update(time.Now())
	got := dev.colorOf(36)
	if got.R != 50 || got.G != 60 || got.B != 70 {
		t.Fatalf("expected Static scheme to command the mode color, got %+v", got)
	}
}
