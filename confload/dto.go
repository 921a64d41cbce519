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

// Package confload is the only place in this repository that reads a
// config file. It decodes the TOML surface §6 describes into plain DTOs
// (github.com/BurntSushi/toml), then hand-builds the core's typed Config
// tree — core.Config carries no toml struct tags, by design, so its
// textual representation stays entirely this package's concern.
package confload

// configDoc is the root TOML document.
type configDoc struct {
	Modes            []modeDoc      `toml:"modes"`
	GlobalMappings   []mappingDoc   `toml:"global_mappings"`
	AdvancedSettings advancedDoc    `toml:"advanced_settings"`
	DeviceHints      map[string]int `toml:"device_hints"`
	Device           string         `toml:"device"`
	LedScheme        string         `toml:"led_scheme"`
}

type modeDoc struct {
	Name     string       `toml:"name"`
	Color    string       `toml:"color"`
	Mappings []mappingDoc `toml:"mappings"`
}

type mappingDoc struct {
	Trigger triggerDoc `toml:"trigger"`
	Action  actionDoc  `toml:"action"`
}

// triggerDoc's id-bearing fields accept either a device_hints alias name
// or a plain decimal ElementId string (SPEC_FULL.md §12 supplement).
type triggerDoc struct {
	Kind         string   `toml:"kind"`
	Id           string   `toml:"id"`
	IdMin        string   `toml:"id_min"`
	IdMax        string   `toml:"id_max"`
	Ids          []string `toml:"ids"`
	VelocityMin  *int     `toml:"velocity_min"`
	VelocityMax  *int     `toml:"velocity_max"`
	Direction    string   `toml:"direction"`
	MinMagnitude *int     `toml:"min_magnitude"`
	DurationMs   int64    `toml:"duration_ms"`
	WindowMs     int64    `toml:"window_ms"`
}

type actionDoc struct {
	Type      string        `toml:"type"`
	Keys      []string      `toml:"keys"`
	Modifiers []string      `toml:"modifiers"`
	Text      string        `toml:"text"`
	Button    string        `toml:"button"`
	X         *int          `toml:"x"`
	Y         *int          `toml:"y"`
	Target    string        `toml:"target"`
	Command   string        `toml:"command"`
	Op        string        `toml:"op"`
	Level     int           `toml:"level"`
	Ms        int64         `toml:"ms"`
	Count     int           `toml:"count"`
	GapMs     int64         `toml:"gap_ms"`
	Inner     *actionDoc    `toml:"inner"`
	Steps     []stepDoc     `toml:"steps"`
	When      *conditionDoc `toml:"when"`
	Then      *actionDoc    `toml:"then"`
	Else      *actionDoc    `toml:"else"`
}

type stepDoc struct {
	Action   actionDoc `toml:"action"`
	NonFatal bool      `toml:"non_fatal"`
}

type conditionDoc struct {
	Type       string         `toml:"type"`
	Start      string         `toml:"start"`
	End        string         `toml:"end"`
	Days       []string       `toml:"days"`
	Name       string         `toml:"name"`
	Conditions []conditionDoc `toml:"conditions"`
	Inner      *conditionDoc  `toml:"inner"`
}

type advancedDoc struct {
	LongPressThresholdMs int64  `toml:"hold_threshold_ms"`
	DoubleTapWindowMs    int64  `toml:"double_tap_timeout_ms"`
	ChordWindowMs        int64  `toml:"chord_timeout_ms"`
	EncoderIdleMs        int64  `toml:"encoder_idle_ms"`
	DeadZonePercent      int    `toml:"dead_zone"`
	VelocityCurve        string `toml:"velocity_curve"`
}
