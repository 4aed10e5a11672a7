// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package telemetry carries barometer readings to the home automation sink.
package telemetry

import (
	"fmt"
	"strconv"
)

// Reading is one barometer report.
type Reading struct {
	SensorIndex  int    `json:"idx"`
	Pressure     string `json:"pressure"`
	ForecastCode string `json:"forecast"`
}

// NewReading formats pressure with one decimal.
func NewReading(idx int, pressure float64, code string) Reading {
	return Reading{
		SensorIndex:  idx,
		Pressure:     strconv.FormatFloat(pressure, 'f', 1, 64),
		ForecastCode: code,
	}
}

// Publisher sends readings to the sink.
type Publisher interface {
	Publish(r Reading) error
}

// DomoticzPayload is the JSON accepted on domoticz/in for a barometer device.
type DomoticzPayload struct {
	Idx    int    `json:"idx"`
	NValue int    `json:"nvalue"`
	SValue string `json:"svalue"`
}

// Domoticz converts r to the domoticz/in message shape: svalue is
// "<pressure>;<forecast>".
func (r Reading) Domoticz() DomoticzPayload {
	return DomoticzPayload{
		Idx:    r.SensorIndex,
		NValue: 0,
		SValue: fmt.Sprintf("%s;%s", r.Pressure, r.ForecastCode),
	}
}
