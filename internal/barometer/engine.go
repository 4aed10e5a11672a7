// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package barometer derives a three hour weather trend from periodic pressure
// samples and paints it onto the forecast cells.
package barometer

import (
	"errors"
	"fmt"
	"math"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hue"
	"github.com/relabs-tech/home_display/internal/telemetry"
)

// ErrImplausible is returned for calibrated readings below the floor guard.
var ErrImplausible = errors.New("implausible pressure reading")

// DefaultFloor rejects the zero readings some sensors report while starting up.
const DefaultFloor = 800.0

// State is the engine lifecycle.
type State int

const (
	Warmup State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "warmup"
}

// Cells is the part of the display the engine paints.
type Cells interface {
	SetCell(identity string, hue, saturation, brightness float64) error
}

// Options configures an Engine.
type Options struct {
	CalibrationOffset float64
	Floor             float64
	SensorIndex       int
}

// Result describes one accepted sample.
type Result struct {
	Pressure float64
	State    State
	Decision *Decision // nil during warmup
}

// Engine owns the pressure history. It is not safe for concurrent use; the
// caller serialises Sample with every other display write.
type Engine struct {
	opts    Options
	cells   Cells
	pub     telemetry.Publisher
	history History
	last    *Decision
}

// NewEngine returns an engine in the warmup state. A zero Floor selects DefaultFloor.
func NewEngine(opts Options, cells Cells, pub telemetry.Publisher) *Engine {
	if opts.Floor == 0 {
		opts.Floor = DefaultFloor
	}
	return &Engine{opts: opts, cells: cells, pub: pub}
}

// State reports whether enough history exists to forecast.
func (e *Engine) State() State {
	if e.history.Valid() {
		return Active
	}
	return Warmup
}

// History returns the held samples, oldest first.
func (e *Engine) History() []float64 {
	return e.history.Samples()
}

// Last returns the most recent forecast, if any.
func (e *Engine) Last() (Decision, bool) {
	if e.last == nil {
		return Decision{}, false
	}
	return *e.last, true
}

// Sample processes one raw sensor reading. Implausible readings leave the
// engine untouched. A telemetry failure is returned alongside a valid Result;
// the display has already been updated by then.
func (e *Engine) Sample(raw float64) (Result, error) {
	p := round2(raw + e.opts.CalibrationOffset)
	if !finite(p) || p < e.opts.Floor {
		return Result{}, fmt.Errorf("%w: %.2f hPa (floor %.0f)", ErrImplausible, p, e.opts.Floor)
	}

	e.history.Push(p)
	if err := e.paint(grid.Barometer, float64(hue.BarometerGauge.Hue(p)), 100); err != nil {
		return Result{}, err
	}

	res := Result{Pressure: p, State: e.State()}
	code := CodeStable

	if delta, ok := e.history.Delta(); ok {
		delta = round2(delta)
		d, err := Classify(p, delta)
		if err != nil {
			return Result{}, err
		}
		if err := e.show(d); err != nil {
			return Result{}, err
		}
		e.last = &d
		res.Decision = &d
		code = d.Code
	}

	if e.pub != nil {
		if err := e.pub.Publish(telemetry.NewReading(e.opts.SensorIndex, p, string(code))); err != nil {
			return res, fmt.Errorf("publish telemetry: %w", err)
		}
	}
	return res, nil
}

func (e *Engine) show(d Decision) error {
	if err := e.paint(grid.BarometerChange, float64(hue.BarometerChange.Hue(d.Delta)), 100); err != nil {
		return err
	}
	if err := e.paint(grid.WindForecast, d.Wind.Hue, d.Wind.Saturation); err != nil {
		return err
	}
	if err := e.paint(grid.RainForecast, d.Rain.Hue, d.Rain.Saturation); err != nil {
		return err
	}
	return e.paint(grid.TempForecast, d.Trend.Hue, d.Trend.Saturation)
}

// paint skips cells missing from a custom layout.
func (e *Engine) paint(identity string, h, s float64) error {
	err := e.cells.SetCell(identity, h, s, 100)
	if errors.Is(err, grid.ErrUnknownIdentity) {
		return nil
	}
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
