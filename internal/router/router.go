// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package router turns decoded telemetry events into display writes.
package router

import (
	"errors"
	"strings"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
	"github.com/relabs-tech/home_display/internal/hue"
)

// DefaultLowLightLux is the ambient level below which the display is dimmed.
const DefaultLowLightLux = 40

// Cells is the display the router writes into.
type Cells interface {
	SetCell(identity string, hue, saturation, brightness float64) error
}

// Dimmer receives the low ambient light flag.
type Dimmer interface {
	SetLowLight(low bool)
}

// Router dispatches events. Events it does not recognise are dropped.
type Router struct {
	cells       Cells
	dimmer      Dimmer
	lowLightLux float64
}

// New returns a router writing into cells. dimmer may be nil.
func New(cells Cells, dimmer Dimmer, lowLightLux float64) *Router {
	if lowLightLux <= 0 {
		lowLightLux = DefaultLowLightLux
	}
	return &Router{cells: cells, dimmer: dimmer, lowLightLux: lowLightLux}
}

var aquariumScales = map[string]hue.Scale{
	grid.AquariumPH:      hue.AquariumPH,
	grid.AquariumAmmonia: hue.AquariumAmmonia,
	grid.AquariumTemp:    hue.AquariumTemperature,
}

// fixedCells are the identities owned by single-cell categories.
var fixedCells = map[Category]string{
	AirQuality:        grid.AirQuality,
	AirPurifierFilter: grid.AirPurifierFilter,
	AirconFilter:      grid.AirconFilter,
	Aircon:            grid.Aircon,
}

// roomSuffix is the identity suffix of each per-room category.
var roomSuffix = map[Category]string{
	Motion:      " Motion",
	Door:        " Door",
	Temperature: " Temp",
	Humidity:    " Hum",
}

// Owns reports whether events of category c may write the cell named
// identity. Room sensors own the cells carrying their suffix; the others own
// one fixed cell each. The barometer cells belong to no category.
func Owns(c Category, identity string) bool {
	if id, ok := fixedCells[c]; ok {
		return identity == id
	}
	if c == AquariumMetric {
		_, ok := aquariumScales[identity]
		return ok
	}
	suffix, ok := roomSuffix[c]
	if !ok || !strings.HasSuffix(identity, suffix) {
		return false
	}
	_, aquarium := aquariumScales[identity]
	return !aquarium
}

// Dispatch applies ev to the display. It returns nil for dropped events; a
// non-nil error means a recognised event could not be drawn.
func (r *Router) Dispatch(ev Event) error {
	if ev.Category != AmbientLight && !Owns(ev.Category, ev.Identity) {
		return nil
	}
	switch ev.Category {
	case Motion, AirPurifierFilter, AirconFilter:
		on, ok := asBool(ev.Value)
		if !ok {
			return nil
		}
		if on {
			return r.set(ev.Identity, hsv.Red)
		}
		return r.set(ev.Identity, hsv.Dark)

	case Door:
		state, ok := asFloat(ev.Value)
		if !ok {
			return nil
		}
		if state == 1 {
			return r.set(ev.Identity, hsv.Yellow)
		}
		return r.set(ev.Identity, hsv.Green)

	case Temperature:
		v, ok := asFloat(ev.Value)
		if !ok {
			return nil
		}
		scale := hue.InteriorTemperature
		if strings.Contains(ev.Identity, "Balcony") {
			scale = hue.BalconyTemperature
		}
		return r.ramp(ev.Identity, scale, v)

	case Humidity:
		v, ok := asFloat(ev.Value)
		if !ok {
			return nil
		}
		return r.ramp(ev.Identity, hue.Humidity, v)

	case AirQuality:
		v, ok := asFloat(ev.Value)
		if !ok {
			return nil
		}
		return r.ramp(ev.Identity, hue.AirQuality, v)

	case Aircon:
		c, ok := airconColor(ev.Value)
		if !ok {
			return nil
		}
		return r.set(ev.Identity, c)

	case AquariumMetric:
		scale, known := aquariumScales[ev.Identity]
		v, ok := asFloat(ev.Value)
		if !known || !ok {
			return nil
		}
		return r.ramp(ev.Identity, scale, v)

	case AmbientLight:
		lux, ok := asFloat(ev.Value)
		if !ok || r.dimmer == nil {
			return nil
		}
		r.dimmer.SetLowLight(lux < r.lowLightLux)
		return nil
	}
	return nil
}

func (r *Router) ramp(identity string, s hue.Scale, v float64) error {
	return r.set(identity, hsv.Color{Hue: float64(s.Hue(v)), Saturation: 100, Brightness: 100})
}

func (r *Router) set(identity string, c hsv.Color) error {
	err := r.cells.SetCell(identity, c.Hue, c.Saturation, c.Brightness)
	if errors.Is(err, grid.ErrUnknownIdentity) {
		return nil
	}
	return err
}

func airconColor(v any) (hsv.Color, bool) {
	var mode AirconMode
	switch m := v.(type) {
	case AirconMode:
		mode = m
	case string:
		mode = AirconMode(strings.ToLower(m))
	default:
		return hsv.Color{}, false
	}
	switch mode {
	case AirconOff:
		return hsv.Dark, true
	case AirconFan:
		return hsv.White, true
	case AirconHeat:
		return hsv.Orange, true
	case AirconCool:
		return hsv.Cyan, true
	}
	return hsv.Color{}, false
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64, float32, int, int64, int32, uint8:
		f, _ := asFloat(b)
		return f != 0, true
	}
	return false, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint8:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
