// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/relabs-tech/home_display/internal/config"
	"github.com/relabs-tech/home_display/internal/homebridge"
	"github.com/relabs-tech/home_display/internal/router"
	"github.com/relabs-tech/home_display/internal/telemetry"
)

// eventPrinter writes decoded events instead of drawing them.
type eventPrinter struct {
	out io.Writer
}

func (p eventPrinter) HandleEvent(ev router.Event) error {
	_, err := fmt.Fprintf(p.out, "[EVENT] %-17s %-22s %v\n", ev.Category, ev.Identity, ev.Value)
	return err
}

// RunMonitor prints every decoded event and every telemetry message until ctx
// is cancelled. config.InitGlobal must have been called.
func RunMonitor(ctx context.Context, out io.Writer) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(fmt.Sprintf("%s-monitor-%s", cfg.MQTTClientID, uuid.NewString()[:8]))

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	if err := homebridge.Subscribe(client, cfg.TopicHomebridge, cfg.TopicAquarium, eventPrinter{out: out}); err != nil {
		return err
	}

	// Subscribe to telemetry
	token := client.Subscribe(cfg.TopicTelemetry, 0, TelemetryPrinter(out))
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicTelemetry)

	<-ctx.Done()
	return nil
}

// TelemetryPrinter prints barometer updates published to the telemetry topic.
func TelemetryPrinter(out io.Writer) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		var p telemetry.DomoticzPayload
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: telemetry unmarshal error: %v", err)
			return
		}

		fmt.Fprintf(out, "[BARO]  idx=%d svalue=%s\n", p.Idx, p.SValue)
	}
}
