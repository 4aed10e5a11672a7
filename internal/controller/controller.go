// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package controller owns the display state and serialises every write to it.
package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/router"
	"github.com/relabs-tech/home_display/internal/telemetry"
)

// Options configures a Controller.
type Options struct {
	Barometer   barometer.Options
	LowLightLux float64
}

// Status is the externally visible barometer state.
type Status struct {
	State    string              `json:"state"`
	Pressure *float64            `json:"pressure,omitempty"`
	History  []float64           `json:"history"`
	Forecast *barometer.Decision `json:"forecast,omitempty"`
}

// Controller feeds events and pressure samples into one grid. HandleEvent and
// SampleBarometer may be called from different goroutines.
type Controller struct {
	mu     sync.Mutex
	grid   *grid.Grid
	router *router.Router
	engine *barometer.Engine
}

// New builds a controller around g. dimmer and pub may be nil.
func New(g *grid.Grid, dimmer router.Dimmer, pub telemetry.Publisher, opts Options) *Controller {
	return &Controller{
		grid:   g,
		router: router.New(g, dimmer, opts.LowLightLux),
		engine: barometer.NewEngine(opts.Barometer, g, pub),
	}
}

// Grid returns the display state.
func (c *Controller) Grid() *grid.Grid {
	return c.grid
}

// HandleEvent applies one decoded event.
func (c *Controller) HandleEvent(ev router.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.router.Dispatch(ev); err != nil {
		return fmt.Errorf("event %s/%s: %w", ev.Category, ev.Identity, err)
	}
	return nil
}

// SampleBarometer feeds one raw pressure reading to the trend engine.
// Implausible readings are logged and skipped.
func (c *Controller) SampleBarometer(raw float64) (barometer.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.engine.Sample(raw)
	if errors.Is(err, barometer.ErrImplausible) {
		log.Printf("barometer: skipping sample: %v", err)
		return res, err
	}
	if err != nil && res.Pressure == 0 {
		return res, err
	}

	if res.Decision == nil {
		log.Printf("barometer: %.2f hPa (%s, %d/%d samples)",
			res.Pressure, res.State, len(c.engine.History()), barometer.HistoryLen)
	} else {
		d := res.Decision
		log.Printf("barometer: %.2f hPa, 3h change %+.2f: %s (code %s)",
			d.Pressure, d.Delta, d.Category, d.Code)
	}
	if err != nil {
		log.Printf("barometer: %v", err)
	}
	return res, err
}

// Status reports the barometer state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:   c.engine.State().String(),
		History: c.engine.History(),
	}
	if n := len(st.History); n > 0 {
		p := st.History[n-1]
		st.Pressure = &p
	}
	if d, ok := c.engine.Last(); ok {
		st.Forecast = &d
	}
	return st
}

// Caption summarises the barometer for text capable sinks.
func (s Status) Caption() []string {
	if s.Pressure == nil {
		return []string{"no data"}
	}
	lines := []string{fmt.Sprintf("%.1f hPa", *s.Pressure)}
	if s.Forecast == nil {
		return append(lines, fmt.Sprintf("%s %d/%d", s.State, len(s.History), barometer.HistoryLen))
	}
	return append(lines,
		fmt.Sprintf("%+.2f/3h", s.Forecast.Delta),
		string(s.Forecast.Category))
}

// Shutdown logs the pressure history so it can be recovered by hand.
func (c *Controller) Shutdown() {
	st := c.Status()
	vals := make([]string, len(st.History))
	for i, p := range st.History {
		vals[i] = fmt.Sprintf("%.2f", p)
	}
	log.Printf("barometer: shutting down, last %d samples: [%s]", len(vals), strings.Join(vals, " "))
}
