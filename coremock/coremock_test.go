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

package coremock

import (
	"testing"
	"time"

	"github.com/padbridge/core"
)

func TestClockAdvance(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(base)
	if !c.Now().Equal(base) {
		t.Fatalf("expected clock to start at base time")
	}
	c.Advance(5 * time.Second)
	if !c.Now().Equal(base.Add(5 * time.Second)) {
		t.Fatalf("expected clock to advance by 5s")
	}
}

func TestLEDDeviceRecordsApplied(t *testing.T) {
	dev := NewLEDDevice()
	dev.Apply(core.SetPad{Id: 36, Color: dev.ColorOf(36)})
	if len(dev.Applied) != 1 {
		t.Fatalf("expected one recorded command, got %d", len(dev.Applied))
	}
}

func TestHostStateProviderDefaultsFalse(t *testing.T) {
	h := NewHostStateProvider()
	if h.IsAppRunning("spotify") || h.IsAppFrontmost("spotify") {
		t.Fatal("expected an unconfigured app to report false")
	}
	h.SetRunning("spotify", true)
	if !h.IsAppRunning("spotify") {
		t.Fatal("expected SetRunning to take effect")
	}
}

func TestLeafRunnerRecordsCalls(t *testing.T) {
	r := NewLeafRunner()
	ctx := core.ExecutionContext{CurrentMode: "Default"}
	r.Keystroke(ctx, core.Keystroke{})
	r.Launch(ctx, core.Launch{Target: "Spotify"})
	if len(r.Calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(r.Calls))
	}
	if r.Calls[1].Method != "Launch" {
		t.Fatalf("expected second call to be Launch, got %s", r.Calls[1].Method)
	}
}
