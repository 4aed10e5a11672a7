// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/controller"
	"github.com/relabs-tech/home_display/internal/display"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/sensors"
)

// RunSimulation drives the forecast cells from the mock barometer on the
// console, one sample per tick, without MQTT or hardware. It returns after
// samples ticks or when ctx is cancelled.
func RunSimulation(ctx context.Context, out io.Writer, tick time.Duration, samples int) error {
	reg, err := grid.NewRegistry(grid.DefaultLayout())
	if err != nil {
		return err
	}
	g := grid.New(reg)
	ctrl := controller.New(g, nil, nil, controller.Options{})

	// one mock day passes every 80 ticks
	src := sensors.NewMockBarometer(1013, 8, 80*tick)
	console := display.NewConsole(out)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for i := 0; i < samples; i++ {
		s, err := src.Read()
		if err != nil {
			return err
		}
		if _, err := ctrl.SampleBarometer(s.PressureHPa()); err != nil && !errors.Is(err, barometer.ErrImplausible) {
			return err
		}
		st := ctrl.Status()
		if err := console.Render(display.Frame{Pixels: g.Snapshot(), Caption: st.Caption()}); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	ctrl.Shutdown()
	return nil
}
