// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package env

// Pascals per hectopascal (and per millibar).
const PascalsPerHPa = 100.0

// Sample represents a single environmental measurement from the barometer.
type Sample struct {
	Source string `json:"source"` // "bmxx80" or "mock"

	Temperature float64 `json:"temp_c"`      // °C
	Pressure    float64 `json:"pressure_pa"` // Pa
}

// PressureHPa returns the pressure in hectopascals.
func (s Sample) PressureHPa() float64 {
	return s.Pressure / PascalsPerHPa
}
