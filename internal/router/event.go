// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package router

import "github.com/relabs-tech/home_display/internal/grid"

// Category selects the handler for an event.
type Category string

const (
	Motion            Category = "Motion"
	Door              Category = "Door"
	Temperature       Category = "Temperature"
	Humidity          Category = "Humidity"
	AirQuality        Category = "AirQuality"
	AirPurifierFilter Category = "AirPurifierFilter"
	AirconFilter      Category = "AirconFilter"
	Aircon            Category = "Aircon"
	AquariumMetric    Category = "AquariumMetric"
	AmbientLight      Category = "AmbientLight"
)

// Event is a decoded telemetry update. Value is a bool, a number or, for
// Aircon, an AirconMode.
type Event struct {
	Category Category `json:"category"`
	Identity string   `json:"identity"`
	Value    any      `json:"value"`
}

// AirconMode is the aircon operating state.
type AirconMode string

const (
	AirconOff  AirconMode = "off"
	AirconFan  AirconMode = "fan"
	AirconHeat AirconMode = "heat"
	AirconCool AirconMode = "cool"
)

// AquariumMetrics lists the aquarium identities by their position in the
// aquarium sensor report.
var AquariumMetrics = [...]string{grid.AquariumPH, grid.AquariumAmmonia, grid.AquariumTemp}

// AquariumEvents splits an indexed aquarium report into one event per metric.
// Extra values are ignored.
func AquariumEvents(values []float64) []Event {
	out := make([]Event, 0, len(AquariumMetrics))
	for i, v := range values {
		if i >= len(AquariumMetrics) {
			break
		}
		out = append(out, Event{Category: AquariumMetric, Identity: AquariumMetrics[i], Value: v})
	}
	return out
}
