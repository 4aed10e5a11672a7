// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package hue maps numeric readings onto the red..blue hue ramp used by the
// sensor cells.
package hue

import "math"

// DefaultFullHue is blue, the cold/low end of the ramp.
const DefaultFullHue = 240

// Scale is a clamped linear ramp: readings at or beyond ZeroAt map to hue 0
// (red), readings at or beyond FullAt map to FullHue, anything between is
// interpolated and truncated toward zero. ZeroAt may be above or below FullAt.
type Scale struct {
	ZeroAt  float64 `toml:"zero_at"`
	FullAt  float64 `toml:"full_at"`
	FullHue int     `toml:"full_hue"`
}

// Hue returns the hue for v, always within [0, FullHue]. A degenerate scale
// (ZeroAt == FullAt) or a NaN reading yields 0.
func (s Scale) Hue(v float64) int {
	full := s.full()
	span := s.ZeroAt - s.FullAt
	if span == 0 || math.IsNaN(v) {
		return 0
	}

	raw := (s.ZeroAt - v) * (float64(full) / span)
	switch {
	case raw <= 0:
		return 0
	case raw >= float64(full):
		return full
	}
	return int(raw)
}

func (s Scale) full() int {
	if s.FullHue <= 0 {
		return DefaultFullHue
	}
	return s.FullHue
}

// Scales used by the display.
var (
	InteriorTemperature = Scale{ZeroAt: 26, FullAt: 18}
	BalconyTemperature  = Scale{ZeroAt: 30, FullAt: 10}
	Humidity            = Scale{ZeroAt: 0, FullAt: 100}
	AirQuality          = Scale{ZeroAt: 5, FullAt: 0, FullHue: 150}
	BarometerGauge      = Scale{ZeroAt: 1023, FullAt: 1003}
	BarometerChange     = Scale{ZeroAt: 4, FullAt: -4}

	AquariumPH          = Scale{ZeroAt: 8.5, FullAt: 6.0}
	AquariumAmmonia     = Scale{ZeroAt: 1.0, FullAt: 0, FullHue: 120}
	AquariumTemperature = Scale{ZeroAt: 30, FullAt: 22}
)
