// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/home_display/internal/display"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
)

// layoutCellColor marks registered cells in the layout preview.
var layoutCellColor = hsv.Color{Hue: 0, Saturation: 0, Brightness: 60}

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the cell layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(false)
			if err != nil {
				return err
			}
			entries, err := cfg.Layout()
			if err != nil {
				return err
			}
			reg, err := grid.NewRegistry(entries)
			if err != nil {
				return err
			}
			return printLayout(cmd.OutOrStdout(), reg)
		},
	}
}

func printLayout(w io.Writer, reg *grid.Registry) error {
	g := grid.New(reg)
	for _, e := range reg.Entries() {
		if err := g.SetColor(e.Identity, layoutCellColor); err != nil {
			return err
		}
	}
	fmt.Fprint(w, display.FormatGrid(g.Snapshot()))
	fmt.Fprintln(w)
	for _, e := range reg.Entries() {
		fmt.Fprintf(w, "(%d,%d) %s\n", e.X, e.Y, e.Identity)
	}
	return nil
}
