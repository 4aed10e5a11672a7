// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package grid

// Identities of cells that are not fed by a room sensor.
const (
	Barometer         = "Barometer"
	BarometerChange   = "Barometer Change"
	WindForecast      = "Wind Forecast"
	RainForecast      = "Rain Forecast"
	TempForecast      = "Temp Forecast"
	Aircon            = "Aircon"
	AirconFilter      = "Aircon Filter"
	AirPurifierFilter = "Air Purifier Filter"
	AirQuality        = "Living Air Quality"
	Humidity          = "North Balcony Hum"
	AquariumPH        = "Aquarium pH"
	AquariumAmmonia   = "Aquarium Ammonia"
	AquariumTemp      = "Aquarium Temp"
)

// DefaultLayout is the household floor plan as laid out on the matrix.
func DefaultLayout() []Entry {
	return []Entry{
		// motion
		{Identity: "Living Motion", X: 6, Y: 4},
		{Identity: "Study Motion", X: 2, Y: 3},
		{Identity: "Kitchen Motion", X: 3, Y: 0},
		{Identity: "North Motion", X: 1, Y: 6},
		{Identity: "South Motion", X: 1, Y: 0},
		{Identity: "Main Motion", X: 5, Y: 6},
		{Identity: "Rear Balcony Motion", X: 0, Y: 6},
		{Identity: "North Balcony Motion", X: 7, Y: 6},
		{Identity: "South Balcony Motion", X: 7, Y: 0},

		// doors
		{Identity: "Entry Door", X: 3, Y: 7},
		{Identity: "South Living Room Door", X: 7, Y: 3},
		{Identity: "North Living Room Door", X: 7, Y: 4},

		// temperature
		{Identity: "Living Temp", X: 6, Y: 5},
		{Identity: "Study Temp", X: 2, Y: 4},
		{Identity: "Kitchen Temp", X: 3, Y: 1},
		{Identity: "North Temp", X: 1, Y: 7},
		{Identity: "South Temp", X: 1, Y: 1},
		{Identity: "Main Temp", X: 5, Y: 7},
		{Identity: "Rear Balcony Temp", X: 0, Y: 7},
		{Identity: "North Balcony Temp", X: 7, Y: 7},
		{Identity: "South Balcony Temp", X: 7, Y: 1},

		{Identity: Humidity, X: 7, Y: 5},
		{Identity: AirQuality, X: 4, Y: 3},
		{Identity: Aircon, X: 4, Y: 4},
		{Identity: AirconFilter, X: 4, Y: 5},
		{Identity: AirPurifierFilter, X: 4, Y: 6},

		{Identity: AquariumPH, X: 5, Y: 0},
		{Identity: AquariumAmmonia, X: 5, Y: 1},
		{Identity: AquariumTemp, X: 5, Y: 2},

		// weather column
		{Identity: WindForecast, X: 0, Y: 0},
		{Identity: RainForecast, X: 0, Y: 1},
		{Identity: TempForecast, X: 0, Y: 2},
		{Identity: Barometer, X: 0, Y: 3},
		{Identity: BarometerChange, X: 0, Y: 4},
	}
}
