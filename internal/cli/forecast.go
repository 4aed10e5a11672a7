// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/hsv"
)

func newForecastCmd() *cobra.Command {
	var pressure, delta float64

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Classify a pressure and three hour change",
		Example: `  home_display forecast --pressure 1025 --delta 7
  home_display forecast -p 1005 -d -3.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := barometer.Classify(pressure, delta)
			if err != nil {
				return err
			}
			return printDecision(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().Float64VarP(&pressure, "pressure", "p", 0, "calibrated pressure in hPa")
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0, "pressure change over three hours in hPa")
	cmd.MarkFlagRequired("pressure")
	return cmd
}

func printDecision(w io.Writer, d barometer.Decision) error {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s  %.2f hPa, %+.2f hPa/3h\n", bold.Sprint(d.Category), d.Pressure, d.Delta)
	fmt.Fprintf(w, "telemetry code %s\n", d.Code)

	for _, cell := range []struct {
		name string
		led  barometer.LED
	}{
		{"wind", d.Wind},
		{"rain", d.Rain},
		{"trend", d.Trend},
	} {
		c, err := hsv.ToRGB(cell.led.Hue, cell.led.Saturation, 100)
		if err != nil {
			return err
		}
		block := color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("  ")
		fmt.Fprintf(w, "%s %-5s hue %3.0f sat %3.0f\n", block, cell.name, cell.led.Hue, cell.led.Saturation)
	}
	return nil
}
