// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sony/gobreaker"
)

// DefaultTopic is where Domoticz listens for device updates.
const DefaultTopic = "domoticz/in"

const publishTimeout = 5 * time.Second

// ErrPublishTimeout is returned when the broker does not acknowledge in time.
var ErrPublishTimeout = errors.New("publish timed out")

// ErrSuspended is returned while the circuit breaker is open.
var ErrSuspended = errors.New("telemetry suspended")

// publishClient is the subset of mqtt.Client used here.
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher sends readings to Domoticz. Repeated broker failures open a
// circuit breaker so a dead broker does not stall the barometer loop.
type MQTTPublisher struct {
	client  publishClient
	topic   string
	circuit *gobreaker.CircuitBreaker
}

// NewMQTTPublisher publishes on topic ("" selects DefaultTopic).
func NewMQTTPublisher(client publishClient, topic string) *MQTTPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "telemetry",
		MaxRequests: 1,
		Interval:    30 * time.Minute,
		Timeout:     10 * time.Minute,
	})
	return &MQTTPublisher{client: client, topic: topic, circuit: cb}
}

// Publish sends r as a Domoticz payload.
func (p *MQTTPublisher) Publish(r Reading) error {
	payload, err := json.Marshal(r.Domoticz())
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}

	_, err = p.circuit.Execute(func() (interface{}, error) {
		token := p.client.Publish(p.topic, 0, false, payload)
		if !token.WaitTimeout(publishTimeout) {
			return nil, ErrPublishTimeout
		}
		return nil, token.Error()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrSuspended, err)
	}
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}
