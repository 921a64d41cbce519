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

// Package ledcolor is the RGB color representation the feedback manager
// speaks to an LED device in, plus the color-science blending its animated
// schemes need (brightness scaling, hue rotation, linear fades). It wraps
// go-colorful the same way the teacher library's color package does for its
// own palette-fitting code (color/fit.go).
package ledcolor

import "github.com/lucasb-eyer/go-colorful"

// RGB is a single LED's commanded color, 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Off is the all-channels-zero color.
var Off = RGB{}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Scale returns c with brightness scaled by factor (0..1 clamped), holding
// hue and saturation constant by scaling in Lab lightness.
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return Off
	}
	if factor >= 1 {
		return c
	}
	l, a, b := c.toColorful().Lab()
	return fromColorful(colorful.Lab(l*factor, a, b))
}

// Blend linearly interpolates from c to other in Lab space, t in 0..1.
func (c RGB) Blend(other RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return fromColorful(c.toColorful().BlendLab(other.toColorful(), t))
}

// Hue returns an RGB at the given hue (0..360), full HSV saturation and
// value, used by the Rainbow/Spiral schemes to sweep color over time.
func Hue(degrees float64) RGB {
	for degrees < 0 {
		degrees += 360
	}
	degrees = mod360(degrees)
	return fromColorful(colorful.Hsv(degrees, 1, 1))
}

func mod360(v float64) float64 {
	for v >= 360 {
		v -= 360
	}
	return v
}

// Velocity-mapped reactive colors, per spec.md §4.4: Soft=green,
// Medium=yellow, Hard=red.
var (
	VelocitySoft   = RGB{0, 200, 0}
	VelocityMedium = RGB{200, 200, 0}
	VelocityHard   = RGB{200, 0, 0}
)
