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

func TestReloadCoordinatorRejectsInvalidConfig(t *testing.T) {
	engine := NewMappingEngine()
	rc := NewReloadCoordinator(engine, nil)

	badCfg := Config{
		Modes: []ModeConfig{{Name: "", Mappings: nil}},
		AdvancedTimings: AdvancedTimings{
			LongPressThresholdMs: 1, // out of [50, 10000]
			DoubleTapWindowMs:    300,
			ChordWindowMs:        60,
			EncoderIdleMs:        250,
		},
	}

	report, err := rc.Reload(badCfg)
	if err == nil {
		t.Fatal("expected reload of invalid config to fail")
	}
	if report.Ok {
		t.Fatal("expected report.Ok == false")
	}
	if len(report.Issues) == 0 {
		t.Fatal("expected at least one validation issue recorded")
	}
	if engine.live.Load() != nil {
		t.Fatal("expected no live map to have been published")
	}
}

func TestReloadCoordinatorHistoryBounded(t *testing.T) {
	engine := NewMappingEngine()
	rc := NewReloadCoordinator(engine, nil)
	cfg := Config{Modes: []ModeConfig{{Name: "Default"}}, AdvancedTimings: DefaultAdvancedTimings()}

	for i := 0; i < maxReloadHistory+5; i++ {
		if _, err := rc.Reload(cfg); err != nil {
			t.Fatalf("reload %d: %v", i, err)
		}
	}

	history := rc.History()
	if len(history) != maxReloadHistory {
		t.Fatalf("expected history capped at %d, got %d", maxReloadHistory, len(history))
	}
	for _, r := range history {
		if !r.Ok || r.Grade == 0 {
			t.Fatalf("expected every recorded reload to be ok and graded, got %#v", r)
		}
	}
}

func TestReloadCoordinatorStatsTracksCounts(t *testing.T) {
	engine := NewMappingEngine()
	rc := NewReloadCoordinator(engine, nil)
	good := Config{Modes: []ModeConfig{{Name: "Default"}}, AdvancedTimings: DefaultAdvancedTimings()}
	bad := Config{Modes: []ModeConfig{{Name: ""}}, AdvancedTimings: AdvancedTimings{LongPressThresholdMs: 1}}

	rc.Reload(good)
	rc.Reload(bad)
	rc.Reload(good)

	stats := rc.Stats()
	if stats.Total != 3 || stats.Succeeded != 2 || stats.Failed != 1 {
		t.Fatalf("expected 3 total, 2 succeeded, 1 failed, got %#v", stats)
	}
}

func TestGradeReloadThresholds(t *testing.T) {
	cases := []struct {
		ok      bool
		totalMs int64
		want    byte
	}{
		{true, 0, 'A'},
		{true, 20, 'A'},
		{true, 21, 'B'},
		{true, 50, 'B'},
		{true, 100, 'C'},
		{true, 200, 'D'},
		{true, 201, 'F'},
		{false, 5, 'F'},
	}
	for _, c := range cases {
		if got := gradeReload(c.ok, c.totalMs); got != c.want {
			t.Fatalf("gradeReload(%v, %d) = %q, want %q", c.ok, c.totalMs, got, c.want)
		}
	}
}
