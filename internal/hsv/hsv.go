// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package hsv converts hue/saturation/brightness triples into the RGB
// values pushed to the LED matrix.
package hsv

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidHue is returned for hues outside [0,360).
	ErrInvalidHue = errors.New("hue out of range")
	// ErrInvalidLevel is returned for saturation or brightness outside [0,100].
	ErrInvalidLevel = errors.New("saturation/brightness out of range")
)

// RGB is a renderable 8-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA implements color.Color so cells can be drawn with image/draw.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Off is the unlit cell colour.
var Off = RGB{}

// Color is a semantic colour: hue in degrees, saturation and brightness in percent.
type Color struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness float64 `json:"brightness"`
}

// Named colours used by the event handlers.
var (
	Red    = Color{Hue: 0, Saturation: 100, Brightness: 100}
	Orange = Color{Hue: 30, Saturation: 100, Brightness: 100}
	Yellow = Color{Hue: 60, Saturation: 100, Brightness: 100}
	Green  = Color{Hue: 120, Saturation: 100, Brightness: 100}
	Cyan   = Color{Hue: 180, Saturation: 100, Brightness: 100}
	White  = Color{Hue: 0, Saturation: 0, Brightness: 100}
	Dark   = Color{}
)

// RGB converts c, see ToRGB.
func (c Color) RGB() (RGB, error) {
	return ToRGB(c.Hue, c.Saturation, c.Brightness)
}

// ToRGB converts a hue/saturation/brightness triple to RGB. Channels are
// truncated toward zero after scaling by 255.
func ToRGB(hue, saturation, brightness float64) (RGB, error) {
	if math.IsNaN(hue) || hue < 0 || hue >= 360 {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidHue, hue)
	}
	if !inPercent(saturation) || !inPercent(brightness) {
		return RGB{}, fmt.Errorf("%w: s=%v v=%v", ErrInvalidLevel, saturation, brightness)
	}

	c := (brightness / 100) * (saturation / 100)
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := brightness/100 - c

	var r, g, b float64
	switch {
	case hue < 60:
		r, g, b = c, x, 0
	case hue < 120:
		r, g, b = x, c, 0
	case hue < 180:
		r, g, b = 0, c, x
	case hue < 240:
		r, g, b = 0, x, c
	case hue < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: channel(r + m),
		G: channel(g + m),
		B: channel(b + m),
	}, nil
}

func inPercent(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

func channel(v float64) uint8 {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
