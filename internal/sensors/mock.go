// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"

	"github.com/relabs-tech/home_display/internal/env"
)

// MockBarometer generates a slow pressure wave around a base value, for
// running without hardware.
type MockBarometer struct {
	base      float64 // hPa
	amplitude float64 // hPa
	period    time.Duration

	start time.Time
	now   func() time.Time
}

// NewMockBarometer swings ±amplitude hPa around base over period.
func NewMockBarometer(base, amplitude float64, period time.Duration) *MockBarometer {
	return &MockBarometer{
		base:      base,
		amplitude: amplitude,
		period:    period,
		start:     time.Now(),
		now:       time.Now,
	}
}

func (m *MockBarometer) Read() (env.Sample, error) {
	elapsed := m.now().Sub(m.start)
	phase := 2 * math.Pi * float64(elapsed) / float64(m.period)
	hpa := m.base + m.amplitude*math.Sin(phase)

	return env.Sample{
		Source:      "mock",
		Temperature: 20 + 2*math.Cos(phase),
		Pressure:    hpa * env.PascalsPerHPa,
	}, nil
}

func (m *MockBarometer) Close() error { return nil }
