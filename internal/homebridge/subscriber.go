// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package homebridge

import (
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/home_display/internal/router"
)

// Handler consumes decoded events.
type Handler interface {
	HandleEvent(ev router.Event) error
}

// subscribeClient is the subset of mqtt.Client used here.
type subscribeClient interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Subscribe routes both topics into h. An empty aquarium topic skips the
// aquarium subscription.
func Subscribe(client subscribeClient, topic, aquariumTopic string, h Handler) error {
	token := client.Subscribe(topic, 0, MessageHandler(h))
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("homebridge: subscribed to %s", topic)

	if aquariumTopic == "" {
		return nil
	}
	token = client.Subscribe(aquariumTopic, 0, AquariumHandler(h))
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("homebridge: subscribed to %s", aquariumTopic)
	return nil
}

// MessageHandler decodes homebridge messages and passes them to h.
func MessageHandler(h Handler) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		ev, ok, err := Decode(msg.Payload())
		if err != nil {
			log.Printf("homebridge: %v", err)
			return
		}
		if !ok {
			return
		}
		if err := h.HandleEvent(ev); err != nil {
			log.Printf("homebridge: %v", err)
		}
	}
}

// AquariumHandler decodes aquarium reports and passes each metric to h.
func AquariumHandler(h Handler) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		events, err := DecodeAquarium(msg.Payload())
		if err != nil {
			log.Printf("homebridge: %v", err)
			return
		}
		for _, ev := range events {
			if err := h.HandleEvent(ev); err != nil {
				log.Printf("homebridge: %v", err)
			}
		}
	}
}
