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

// Config is the typed config tree the core accepts. Its textual
// representation (TOML, on disk) is an adapter's concern — see the
// confload package, which is the only place in this repository that reads
// a file. Building one of these by hand (or via confload) and calling
// Validate is the entire surface the core exposes for configuration.
type Config struct {
	Modes           []ModeConfig
	GlobalMappings  []Mapping
	AdvancedTimings AdvancedTimings
	DeviceHints     map[string]ElementId // name -> ElementId alias, resolved at compile time
	Device          string               // adapter hint only, opaque to the core
	LedScheme       SchemeName
}

// ModeConfig is one named mapping scope.
type ModeConfig struct {
	Name     string
	Color    string // hex string like "#00ff88", parsed by Validate
	Mappings []Mapping
}

// Mapping pairs a Trigger with the Action it fires.
type Mapping struct {
	Trigger Trigger
	Action  Action
}

// AdvancedTimings are the processor's gesture thresholds, hot-swappable via
// Processor.SetTimings. VelocityCurve is a SPEC_FULL.md supplement: it
// reshapes a raw 0..127 velocity before bucketing into Soft/Medium/Hard.
type AdvancedTimings struct {
	LongPressThresholdMs int64
	DoubleTapWindowMs    int64
	ChordWindowMs        int64
	EncoderIdleMs        int64
	DeadZonePercent      int // 0..100
	VelocityCurve        VelocityCurve
}

// VelocityCurve names an optional reshaping applied to a raw velocity
// before bucketing (SPEC_FULL.md §12 supplement).
type VelocityCurve int

const (
	VelocityCurveLinear VelocityCurve = iota
	VelocityCurveSoft
	VelocityCurveHard
)

// Apply reshapes a raw 0..127 velocity. Soft squares the normalized value,
// lowering every velocity below 127 (makes Hard harder to reach); Hard
// applies the mirrored curve, raising every velocity above 0 (makes Hard
// easier to reach). Linear is the identity.
func (c VelocityCurve) Apply(raw uint8) uint8 {
	switch c {
	case VelocityCurveSoft:
		v := (float64(raw) / 127.0)
		v = v * v
		return uint8(v * 127.0)
	case VelocityCurveHard:
		v := float64(raw) / 127.0
		v = 1 - (1-v)*(1-v)
		return uint8(v * 127.0)
	default:
		return raw
	}
}

// DefaultAdvancedTimings are the fallback gesture thresholds; each lies
// inside the range validator.go enforces for it.
func DefaultAdvancedTimings() AdvancedTimings {
	return AdvancedTimings{
		LongPressThresholdMs: 600,
		DoubleTapWindowMs:    300,
		ChordWindowMs:        60,
		EncoderIdleMs:        250,
		DeadZonePercent:      10,
		VelocityCurve:        VelocityCurveLinear,
	}
}

// SchemeName identifies a feedback-manager lighting scheme; see feedback.go.
type SchemeName string

const (
	SchemeOff       SchemeName = "Off"
	SchemeStatic    SchemeName = "Static"
	SchemeReactive  SchemeName = "Reactive"
	SchemeBreathing SchemeName = "Breathing"
	SchemePulse     SchemeName = "Pulse"
	SchemeRainbow   SchemeName = "Rainbow"
	SchemeWave      SchemeName = "Wave"
	SchemeSparkle   SchemeName = "Sparkle"
	SchemeVUMeter   SchemeName = "VUMeter"
	SchemeSpiral    SchemeName = "Spiral"
)
