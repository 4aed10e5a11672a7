// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package grid

import (
	"errors"
	"fmt"
	"sort"
)

// Size is the edge length of the LED matrix.
const Size = 8

// Cells is the number of cells in the matrix.
const Cells = Size * Size

var (
	// ErrUnknownIdentity is returned when an identity has no cell in the registry.
	ErrUnknownIdentity = errors.New("unknown identity")
	// ErrInvalidLayout is returned by NewRegistry for malformed layouts.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Coord addresses a single cell.
type Coord struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Index returns the position of c in a Frame.
func (c Coord) Index() int {
	return c.X + c.Y*Size
}

func (c Coord) valid() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

// Entry binds one identity to one cell.
type Entry struct {
	Identity string `json:"identity" toml:"identity"`
	X        int    `json:"x" toml:"x"`
	Y        int    `json:"y" toml:"y"`
}

// Registry is the immutable identity -> coordinate table.
type Registry struct {
	cells map[string]Coord
}

// NewRegistry validates entries and builds the registry. Coordinates must be
// inside the matrix and no two identities may share a cell.
func NewRegistry(entries []Entry) (*Registry, error) {
	cells := make(map[string]Coord, len(entries))
	owners := make(map[Coord]string, len(entries))

	for _, e := range entries {
		if e.Identity == "" {
			return nil, fmt.Errorf("%w: empty identity at (%d,%d)", ErrInvalidLayout, e.X, e.Y)
		}
		c := Coord{X: e.X, Y: e.Y}
		if !c.valid() {
			return nil, fmt.Errorf("%w: %q at (%d,%d) is outside the %dx%d matrix", ErrInvalidLayout, e.Identity, e.X, e.Y, Size, Size)
		}
		if _, dup := cells[e.Identity]; dup {
			return nil, fmt.Errorf("%w: duplicate identity %q", ErrInvalidLayout, e.Identity)
		}
		if other, taken := owners[c]; taken {
			return nil, fmt.Errorf("%w: %q and %q share cell (%d,%d)", ErrInvalidLayout, other, e.Identity, e.X, e.Y)
		}
		cells[e.Identity] = c
		owners[c] = e.Identity
	}

	return &Registry{cells: cells}, nil
}

// Lookup resolves identity to its coordinate.
func (r *Registry) Lookup(identity string) (Coord, error) {
	c, ok := r.cells[identity]
	if !ok {
		return Coord{}, fmt.Errorf("%w: %q", ErrUnknownIdentity, identity)
	}
	return c, nil
}

// Has reports whether identity is registered.
func (r *Registry) Has(identity string) bool {
	_, ok := r.cells[identity]
	return ok
}

// Entries returns the layout sorted by cell index.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.cells))
	for id, c := range r.cells {
		out = append(out, Entry{Identity: id, X: c.X, Y: c.Y})
	}
	sort.Slice(out, func(i, j int) bool {
		return Coord{out[i].X, out[i].Y}.Index() < Coord{out[j].X, out[j].Y}.Index()
	})
	return out
}
