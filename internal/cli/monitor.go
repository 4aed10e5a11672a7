// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/home_display/internal/app"
)

func newMonitorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Print decoded events and telemetry from the broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.loadConfig(false); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.RunMonitor(ctx, cmd.OutOrStdout())
		},
	}
}

func newSimulateCmd() *cobra.Command {
	var (
		tick    time.Duration
		samples int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the forecast against a simulated barometer on the console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.RunSimulation(ctx, cmd.OutOrStdout(), tick, samples)
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", 500*time.Millisecond, "time between simulated samples")
	cmd.Flags().IntVarP(&samples, "samples", "n", 80, "number of samples to simulate")
	return cmd
}
