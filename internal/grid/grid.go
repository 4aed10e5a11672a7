// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package grid holds the 8x8 display buffer every event handler writes into.
package grid

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/relabs-tech/home_display/internal/hsv"
)

// Frame is a full snapshot of the matrix, indexed by x + 8*y.
type Frame [Cells]hsv.RGB

// Grid is the display buffer. Writers are serialised by an internal mutex and
// publish a fresh copy of the frame; readers load the latest copy without
// taking any lock, so the render loop never waits on a writer.
type Grid struct {
	registry *Registry

	mu    sync.Mutex // serialises writers
	frame atomic.Pointer[Frame]
}

// New returns a grid with every cell off.
func New(registry *Registry) *Grid {
	g := &Grid{registry: registry}
	g.frame.Store(&Frame{})
	return g
}

// Registry returns the layout the grid was built with.
func (g *Grid) Registry() *Registry {
	return g.registry
}

// SetCell colours the cell owned by identity.
func (g *Grid) SetCell(identity string, hue, saturation, brightness float64) error {
	coord, err := g.registry.Lookup(identity)
	if err != nil {
		return err
	}
	rgb, err := hsv.ToRGB(hue, saturation, brightness)
	if err != nil {
		return fmt.Errorf("cell %q: %w", identity, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cur := g.frame.Load()
	if cur[coord.Index()] == rgb {
		return nil
	}
	next := *cur
	next[coord.Index()] = rgb
	g.frame.Store(&next)
	return nil
}

// SetColor is SetCell for a named colour.
func (g *Grid) SetColor(identity string, c hsv.Color) error {
	return g.SetCell(identity, c.Hue, c.Saturation, c.Brightness)
}

// Snapshot returns a copy of the current frame.
func (g *Grid) Snapshot() Frame {
	return *g.frame.Load()
}

// Cell returns the current colour of identity's cell.
func (g *Grid) Cell(identity string) (hsv.RGB, error) {
	coord, err := g.registry.Lookup(identity)
	if err != nil {
		return hsv.RGB{}, err
	}
	return g.frame.Load()[coord.Index()], nil
}
