// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package app wires the display service together.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/relabs-tech/home_display/internal/barometer"
	"github.com/relabs-tech/home_display/internal/config"
	"github.com/relabs-tech/home_display/internal/controller"
	"github.com/relabs-tech/home_display/internal/display"
	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/homebridge"
	"github.com/relabs-tech/home_display/internal/scheduler"
	"github.com/relabs-tech/home_display/internal/sensors"
	"github.com/relabs-tech/home_display/internal/telemetry"
	"github.com/relabs-tech/home_display/internal/web"
)

// RunDisplay runs the display service until ctx is cancelled. config.InitGlobal
// must have been called.
func RunDisplay(ctx context.Context) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	registry, err := grid.NewRegistry(layout)
	if err != nil {
		return err
	}
	g := grid.New(registry)
	log.Printf("display: %d cells registered", len(registry.Entries()))

	renderer := display.NewRenderer(g, cfg.RenderInterval())
	closers, err := openSinks(cfg, renderer)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("display: close error: %v", err)
			}
		}
	}()

	// Connect to MQTT
	clientID := fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.NewString()[:8])
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	// Subscriptions are restored on every reconnect.
	var ctrl *controller.Controller
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if err := homebridge.Subscribe(c, cfg.TopicHomebridge, cfg.TopicAquarium, ctrl); err != nil {
			log.Printf("display: subscribe failed: %v", err)
		}
	})
	client := mqtt.NewClient(opts)

	ctrl = controller.New(g, renderer, telemetry.NewMQTTPublisher(client, cfg.TopicTelemetry), controller.Options{
		Barometer: barometer.Options{
			CalibrationOffset: cfg.BarometerCalibrationOffset,
			Floor:             cfg.BarometerFloor,
			SensorIndex:       cfg.TelemetrySensorIdx,
		},
		LowLightLux: cfg.LowLightLux,
	})

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("display: connected to MQTT broker at %s as %s", cfg.MQTTBroker, clientID)

	source, err := openBarometer(cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	sched := scheduler.New(source, ctrl, cfg.SampleInterval())
	sched.OnSample(func(barometer.Result) {
		renderer.SetCaption(ctrl.Status().Caption()...)
	})
	renderer.SetCaption(ctrl.Status().Caption()...)

	server := web.NewServer(renderer, ctrl, registry)
	if cfg.HasSink("websocket") {
		renderer.AddSink(server.Hub())
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.WebServerPort))
	}()
	rendered := make(chan struct{})
	go func() {
		renderer.Run(ctx)
		close(rendered)
	}()

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	select {
	case <-ctx.Done():
	case err = <-errc:
		if err != nil {
			err = fmt.Errorf("web server: %w", err)
		}
	}

	log.Println("display: shutting down")
	cancel()
	<-rendered
	sched.Stop()
	ctrl.Shutdown()
	return err
}

func openSinks(cfg *config.Config, r *display.Renderer) ([]func() error, error) {
	var closers []func() error
	for _, name := range cfg.DisplaySinks {
		switch name {
		case "console":
			r.AddSink(display.NewConsole(nil))
		case "oled":
			oled, err := display.NewOLED(cfg.DisplayI2CBus)
			if err != nil {
				for _, c := range closers {
					c()
				}
				return nil, err
			}
			r.AddSink(oled)
			closers = append(closers, oled.Close)
		case "websocket":
			// registered once the web server exists
		}
	}
	return closers, nil
}

func openBarometer(cfg *config.Config) (sensors.Barometer, error) {
	if cfg.BarometerSource == "mock" {
		log.Println("display: using mock barometer")
		return sensors.NewMockBarometer(1013, 6, 24*time.Hour), nil
	}
	return sensors.OpenBMXX80(cfg.BarometerBus, cfg.BarometerDevice, cfg.BarometerI2CAddr)
}
