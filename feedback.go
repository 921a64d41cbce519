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
	"hash/fnv"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/padbridge/core/ledcolor"
)

// fadeHorizon is how long a released pad's Reactive color takes to fade to
// black, per §4.4.
const fadeHorizon = 1000 * time.Millisecond

// FeedbackCommand is the wire-free protocol the feedback manager speaks to
// an LED device: set one pad's color, or clear every pad. The device
// adapter owns actual wire-level framing (§6 "Core → LED device").
type FeedbackCommand interface {
	isFeedbackCommand()
}

type feedbackCommandBase struct{}

func (feedbackCommandBase) isFeedbackCommand() {}

// SetPad commands a single pad to a color.
type SetPad struct {
	feedbackCommandBase
	Id    ElementId
	Color ledcolor.RGB
}

// ClearAllPads commands every pad off.
type ClearAllPads struct {
	feedbackCommandBase
}

// LEDDevice is the capability a platform adapter provides to actually push
// FeedbackCommands to hardware; see the ledstrip package for a WS2812-over-
// SPI implementation.
type LEDDevice interface {
	Apply(cmd FeedbackCommand) error
}

type padRecord struct {
	pressedAt  time.Time
	velocity   VelocityLevel
	rawVel     uint8
	released   bool
	releasedAt time.Time
}

// FeedbackManager maintains per-element LED state and drives an LEDDevice
// with the current scheme. Elements is the fixed set of pad ids the device
// can illuminate; "whole device" schemes (Static, Breathing, Rainbow, ...)
// iterate it, since the manager otherwise only learns about ids it has seen
// a press for.
type FeedbackManager struct {
	device   LEDDevice
	logger   *zap.Logger
	elements []ElementId

	mu        sync.Mutex
	scheme    SchemeName
	modeColor ModeColor
	pads      map[ElementId]*padRecord
	level     float64 // external VU input, 0..1; see SetLevel
	started   time.Time
}

// NewFeedbackManager builds a manager for the given fixed set of pad ids.
func NewFeedbackManager(device LEDDevice, elements []ElementId, logger *zap.Logger) *FeedbackManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackManager{
		device:   device,
		logger:   logger,
		elements: elements,
		scheme:   SchemeReactive,
		pads:     make(map[ElementId]*padRecord),
		started:  time.Time{},
	}
}

// OnPadPress records a press under Reactive and commands the velocity-
// mapped color immediately.
func (m *FeedbackManager) OnPadPress(id ElementId, velocity VelocityLevel, rawVelocity uint8, now time.Time) {
	m.mu.Lock()
	m.pads[id] = &padRecord{pressedAt: now, velocity: velocity, rawVel: rawVelocity}
	m.mu.Unlock()
	if m.scheme == SchemeReactive {
		m.apply(SetPad{Id: id, Color: velocityColor(velocity).Scale(float64(rawVelocity) / 127.0)})
	}
}

// OnPadRelease marks id released; its record remains so Update can fade it.
func (m *FeedbackManager) OnPadRelease(id ElementId, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.pads[id]; ok {
		r.released = true
		r.releasedAt = now
	}
}

// OnModeChange updates the base color Static/Breathing/Pulse schemes use.
func (m *FeedbackManager) OnModeChange(mode string, color ModeColor) {
	m.mu.Lock()
	m.modeColor = color
	m.mu.Unlock()
}

// SetScheme switches the active lighting scheme, clearing all Reactive
// per-pad records (§4.4: "switching away from Reactive clears all
// records").
func (m *FeedbackManager) SetScheme(scheme SchemeName) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheme = scheme
	m.pads = make(map[ElementId]*padRecord)
}

// SetLevel feeds an external 0..1 audio level into the VUMeter scheme; it
// is a no-op for every other scheme.
func (m *FeedbackManager) SetLevel(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.mu.Lock()
	m.level = level
	m.mu.Unlock()
}

// Clear commands every pad off and drops all Reactive records.
func (m *FeedbackManager) Clear() {
	m.mu.Lock()
	m.pads = make(map[ElementId]*padRecord)
	m.mu.Unlock()
	m.apply(ClearAllPads{})
}

// Update advances the active scheme by one frame and returns the ids whose
// Reactive fade completed since the last call. Callers should invoke this
// at 30-60 Hz for animated schemes, or as infrequently as 10 Hz for
// Off/Static (§4.4 "Scheduling").
func (m *FeedbackManager) Update(now time.Time) []ElementId {
	m.mu.Lock()
	scheme := m.scheme
	m.mu.Unlock()

	switch scheme {
	case SchemeOff:
		return nil
	case SchemeReactive:
		return m.updateReactive(now)
	default:
		m.updateWholeDevice(scheme, now)
		return nil
	}
}

func (m *FeedbackManager) updateReactive(now time.Time) []ElementId {
	m.mu.Lock()
	defer m.mu.Unlock()

	var completed []ElementId
	for id, r := range m.pads {
		if !r.released {
			continue
		}
		elapsed := now.Sub(r.releasedAt)
		if elapsed >= fadeHorizon {
			delete(m.pads, id)
			completed = append(completed, id)
			m.apply(SetPad{Id: id, Color: ledcolor.Off})
			continue
		}
		frac := 1 - float64(elapsed)/float64(fadeHorizon)
		m.apply(SetPad{Id: id, Color: velocityColor(r.velocity).Scale(float64(r.rawVel) / 127.0 * frac)})
	}
	return completed
}

// updateWholeDevice drives schemes that light every element the device
// exposes, independent of Reactive's per-pad press/release bookkeeping.
func (m *FeedbackManager) updateWholeDevice(scheme SchemeName, now time.Time) {
	m.mu.Lock()
	base := m.modeColor
	level := m.level
	m.mu.Unlock()

	baseRGB := ledcolor.RGB{R: base.R, G: base.G, B: base.B}
	t := now.Sub(m.zeroTime()).Seconds()

	for i, id := range m.elements {
		var c ledcolor.RGB
		switch scheme {
		case SchemeStatic:
			c = baseRGB
		case SchemeBreathing:
			phase := (math.Sin(t*math.Pi) + 1) / 2
			c = baseRGB.Scale(0.15 + 0.85*phase)
		case SchemePulse:
			phase := math.Mod(t, 1.0)
			if phase > 0.5 {
				phase = 1 - phase
			}
			c = baseRGB.Scale(phase * 2)
		case SchemeRainbow:
			c = ledcolor.Hue(math.Mod(t*60+float64(i)*360/float64(max1(len(m.elements))), 360))
		case SchemeWave:
			phase := math.Sin(t*2*math.Pi + float64(i)*0.6)
			c = baseRGB.Scale((phase + 1) / 2)
		case SchemeSparkle:
			if sparkleOn(id, now) {
				c = baseRGB
			} else {
				c = ledcolor.Off
			}
		case SchemeVUMeter:
			threshold := float64(i+1) / float64(max1(len(m.elements)))
			if level >= threshold {
				c = velocityColor(VelocityHard).Scale(level)
			} else {
				c = ledcolor.Off
			}
		case SchemeSpiral:
			offset := float64(i) / float64(max1(len(m.elements))) * 360
			c = ledcolor.Hue(math.Mod(t*90+offset, 360))
		default:
			c = ledcolor.Off
		}
		m.apply(SetPad{Id: id, Color: c})
	}
}

// zeroTime anchors scheme phase calculations; schemes only need a stable
// reference instant, not wall-clock epoch, so the manager's own start time
// (first Update call) is used.
func (m *FeedbackManager) zeroTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started.IsZero() {
		m.started = time.Now()
	}
	return m.started
}

func (m *FeedbackManager) apply(cmd FeedbackCommand) {
	if m.device == nil {
		return
	}
	if err := m.device.Apply(cmd); err != nil {
		m.logger.Warn("feedback device write failed", zap.Error(err))
	}
}

func velocityColor(v VelocityLevel) ledcolor.RGB {
	switch v {
	case VelocitySoft:
		return ledcolor.VelocitySoft
	case VelocityMedium:
		return ledcolor.VelocityMedium
	default:
		return ledcolor.VelocityHard
	}
}

// sparkleOn deterministically decides whether id is lit in the current
// ~120ms sparkle frame, hashing (id, frame) so the pattern is stable within
// a frame but reshuffles every frame without any shared RNG state.
func sparkleOn(id ElementId, now time.Time) bool {
	frame := now.UnixMilli() / 120
	h := fnv.New32a()
	h.Write([]byte{byte(id), byte(id >> 8), byte(frame), byte(frame >> 8), byte(frame >> 16)})
	return h.Sum32()%5 == 0
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
