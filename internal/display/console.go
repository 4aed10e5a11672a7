// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/relabs-tech/home_display/internal/grid"
)

// Console draws the matrix in a terminal with 24-bit background colours.
// It only writes when the frame changes.
type Console struct {
	out  io.Writer
	last *Frame
}

// NewConsole writes to out; nil selects color.Output.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = color.Output
	}
	return &Console{out: out}
}

func (c *Console) Name() string { return "console" }

// Render prints the frame if it differs from the previous one.
func (c *Console) Render(f Frame) error {
	if c.last != nil && sameFrame(*c.last, f) {
		return nil
	}
	if _, err := io.WriteString(c.out, FormatGrid(f.Dimmed())); err != nil {
		return err
	}
	if len(f.Caption) > 0 {
		if _, err := fmt.Fprintln(c.out, strings.Join(f.Caption, " | ")); err != nil {
			return err
		}
	}
	c.last = &f
	return nil
}

// FormatGrid renders pixels as eight rows of coloured blocks, row 0 first.
func FormatGrid(pixels grid.Frame) string {
	var b strings.Builder
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			px := pixels[x+y*grid.Size]
			b.WriteString(color.BgRGB(int(px.R), int(px.G), int(px.B)).Sprint("  "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sameFrame(a, b Frame) bool {
	if a.Pixels != b.Pixels || a.LowLight != b.LowLight || len(a.Caption) != len(b.Caption) {
		return false
	}
	for i := range a.Caption {
		if a.Caption[i] != b.Caption[i] {
			return false
		}
	}
	return true
}
