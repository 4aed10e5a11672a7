// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package display pushes grid snapshots to the configured outputs at a fixed
// cadence.
package display

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
)

// DefaultInterval is the render cadence.
const DefaultInterval = 500 * time.Millisecond

// lowLightScale is applied to every channel when the room is dark.
const lowLightScale = 0.3

// Frame is what a sink draws.
type Frame struct {
	Pixels   grid.Frame `json:"pixels"`
	LowLight bool       `json:"low_light"`
	Caption  []string   `json:"caption,omitempty"`
}

// Dimmed returns the pixels scaled for low ambient light. Unchanged when the
// room is bright.
func (f Frame) Dimmed() grid.Frame {
	if !f.LowLight {
		return f.Pixels
	}
	var out grid.Frame
	for i, px := range f.Pixels {
		out[i] = hsv.RGB{
			R: uint8(float64(px.R) * lowLightScale),
			G: uint8(float64(px.G) * lowLightScale),
			B: uint8(float64(px.B) * lowLightScale),
		}
	}
	return out
}

// Sink is an output device.
type Sink interface {
	Name() string
	Render(f Frame) error
}

// Source provides grid snapshots.
type Source interface {
	Snapshot() grid.Frame
}

// Renderer copies the grid to every sink on each tick.
type Renderer struct {
	src      Source
	sinks    []Sink
	interval time.Duration

	lowLight atomic.Bool
	caption  atomic.Pointer[[]string]
}

// NewRenderer returns a renderer; a zero interval selects DefaultInterval.
func NewRenderer(src Source, interval time.Duration, sinks ...Sink) *Renderer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Renderer{src: src, sinks: sinks, interval: interval}
}

// AddSink registers another output. It must be called before Run.
func (r *Renderer) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// SetLowLight sets the ambient light flag passed to sinks.
func (r *Renderer) SetLowLight(low bool) {
	r.lowLight.Store(low)
}

// SetCaption sets the status text shown by sinks that can draw text.
func (r *Renderer) SetCaption(lines ...string) {
	c := append([]string(nil), lines...)
	r.caption.Store(&c)
}

// Frame assembles the current frame.
func (r *Renderer) Frame() Frame {
	f := Frame{
		Pixels:   r.src.Snapshot(),
		LowLight: r.lowLight.Load(),
	}
	if c := r.caption.Load(); c != nil {
		f.Caption = *c
	}
	return f
}

// RenderOnce draws the current frame on every sink. A failing sink is logged
// and does not stop the others.
func (r *Renderer) RenderOnce() {
	f := r.Frame()
	for _, s := range r.sinks {
		if err := s.Render(f); err != nil {
			log.Printf("display: error updating %s: %v", s.Name(), err)
		}
	}
}

// Run renders until ctx is cancelled.
func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("display: starting update loop (%s, %d sinks)", r.interval, len(r.sinks))

	for {
		select {
		case <-ctx.Done():
			log.Println("display: update loop stopped")
			return
		case <-ticker.C:
			r.RenderOnce()
		}
	}
}
