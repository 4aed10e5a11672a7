// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package homebridge decodes home automation MQTT messages into display events.
package homebridge

import (
	"encoding/json"
	"fmt"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/router"
)

// Default topics.
const (
	DefaultTopic         = "homebridge/to/set"
	DefaultAquariumTopic = "aquarium/metrics"
)

// Message is a homebridge-mqtt set request.
type Message struct {
	Name           string `json:"name"`
	ServiceName    string `json:"service_name"`
	Service        string `json:"service"`
	Characteristic string `json:"characteristic"`
	Value          any    `json:"value"`
}

// Accessory and service names with a dedicated handler.
const (
	airconAccessory   = "Aircon"
	ambientLightName  = "Living Lux"
	airPurifierFilter = "FilterChangeIndication"
)

// Decode parses one homebridge message. ok is false for messages the display
// does not show.
func Decode(payload []byte) (ev router.Event, ok bool, err error) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return router.Event{}, false, fmt.Errorf("decode homebridge message: %w", err)
	}
	ev, ok = m.Event()
	return ev, ok, nil
}

// Event maps m to a router event.
func (m Message) Event() (router.Event, bool) {
	switch {
	case m.ServiceName == grid.AirQuality && m.Characteristic == "AirQuality":
		return router.Event{Category: router.AirQuality, Identity: m.ServiceName, Value: m.Value}, true
	case m.Name == airconAccessory:
		return m.aircon()
	case m.Service == "MotionSensor" && m.Characteristic == "MotionDetected":
		return router.Event{Category: router.Motion, Identity: m.ServiceName, Value: m.Value}, true
	case m.Service == "ContactSensor" && m.Characteristic == "ContactSensorState":
		return router.Event{Category: router.Door, Identity: m.ServiceName, Value: m.Value}, true
	case m.Service == "TemperatureSensor" && m.Characteristic == "CurrentTemperature":
		return router.Event{Category: router.Temperature, Identity: m.ServiceName, Value: m.Value}, true
	case m.Service == "HumiditySensor" && m.Characteristic == "CurrentRelativeHumidity":
		return router.Event{Category: router.Humidity, Identity: m.ServiceName, Value: m.Value}, true
	case m.ServiceName == ambientLightName && m.Characteristic == "CurrentAmbientLightLevel":
		return router.Event{Category: router.AmbientLight, Identity: m.ServiceName, Value: m.Value}, true
	case m.Characteristic == airPurifierFilter:
		return router.Event{Category: router.AirPurifierFilter, Identity: grid.AirPurifierFilter, Value: m.Value}, true
	}
	return router.Event{}, false
}

// aircon maps the switches of the aircon accessory. Only switches turning on
// select a mode; Remote Operation turning off switches the unit off.
func (m Message) aircon() (router.Event, bool) {
	on, isBool := m.Value.(bool)
	if !isBool {
		return router.Event{}, false
	}

	mode := router.AirconMode("")
	switch m.ServiceName {
	case "Filter":
		return router.Event{Category: router.AirconFilter, Identity: grid.AirconFilter, Value: on}, true
	case "Remote Operation":
		if !on {
			mode = router.AirconOff
		}
	case "Fan":
		if on {
			mode = router.AirconFan
		}
	case "Heat":
		if on {
			mode = router.AirconHeat
		}
	case "Cool":
		if on {
			mode = router.AirconCool
		}
	}
	if mode == "" {
		return router.Event{}, false
	}
	return router.Event{Category: router.Aircon, Identity: grid.Aircon, Value: mode}, true
}

// DecodeAquarium parses an aquarium report: a JSON array of pH, ammonia and
// temperature.
func DecodeAquarium(payload []byte) ([]router.Event, error) {
	var values []float64
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("decode aquarium report: %w", err)
	}
	return router.AquariumEvents(values), nil
}
