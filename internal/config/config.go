// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker   string `validate:"required"`
	MQTTClientID string `validate:"required"`

	// Topics
	TopicHomebridge    string `validate:"required"`
	TopicAquarium      string // empty disables the aquarium subscription
	TopicTelemetry     string `validate:"required"`
	TelemetrySensorIdx int    `validate:"gte=0"`

	// Barometer Hardware
	BarometerSource  string `validate:"oneof=bmxx80 mock"`
	BarometerBus     string `validate:"oneof=i2c spi"`
	BarometerDevice  string // "" opens the first bus
	BarometerI2CAddr uint16

	// Barometer Processing
	BarometerCalibrationOffset     float64 // hPa, added to every raw reading
	BarometerFloor                 float64 `validate:"gte=0"` // hPa
	BarometerSampleIntervalMinutes int     `validate:"gte=1"`

	// Display
	DisplayUpdateInterval int      `validate:"gte=50"` // milliseconds
	DisplaySinks          []string `validate:"min=1,dive,oneof=console oled websocket"`
	DisplayI2CBus         string
	LowLightLux           float64 `validate:"gt=0"`
	LayoutFile            string  // optional TOML layout

	// Web Server
	WebServerPort int `validate:"gte=1,lte=65535"`
}

// globalConfig is set once by InitGlobal and read through Get.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

var validate = validator.New()

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		MQTTBroker:                     "tcp://localhost:1883",
		MQTTClientID:                   "home-display",
		TopicHomebridge:                "homebridge/to/set",
		TopicAquarium:                  "aquarium/metrics",
		TopicTelemetry:                 "domoticz/in",
		TelemetrySensorIdx:             0,
		BarometerSource:                "bmxx80",
		BarometerBus:                   "i2c",
		BarometerI2CAddr:               0x76,
		BarometerFloor:                 800,
		BarometerSampleIntervalMinutes: 18,
		DisplayUpdateInterval:          500,
		DisplaySinks:                   []string{"console"},
		LowLightLux:                    40,
		WebServerPort:                  8080,
	}
}

// Load reads the KEY=VALUE configuration file on top of Default.
func Load(configPath string) (*Config, error) {
	values, err := godotenv.Read(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := cfg.setValue(key, strings.TrimSpace(values[key])); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value

	// Topics
	case "TOPIC_HOMEBRIDGE":
		c.TopicHomebridge = value
	case "TOPIC_AQUARIUM":
		c.TopicAquarium = value
	case "TOPIC_TELEMETRY":
		c.TopicTelemetry = value
	case "TELEMETRY_SENSOR_IDX":
		idx, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TELEMETRY_SENSOR_IDX %q: %w", value, err)
		}
		c.TelemetrySensorIdx = idx

	// Barometer Hardware
	case "BAROMETER_SOURCE":
		c.BarometerSource = strings.ToLower(value)
	case "BAROMETER_BUS":
		c.BarometerBus = strings.ToLower(value)
	case "BAROMETER_DEVICE":
		c.BarometerDevice = value
	case "BAROMETER_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid BAROMETER_I2C_ADDR %q: %w", value, err)
		}
		c.BarometerI2CAddr = uint16(addr)

	// Barometer Processing
	case "BAROMETER_CALIBRATION_OFFSET":
		offset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid BAROMETER_CALIBRATION_OFFSET %q: %w", value, err)
		}
		c.BarometerCalibrationOffset = offset
	case "BAROMETER_FLOOR":
		floor, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid BAROMETER_FLOOR %q: %w", value, err)
		}
		c.BarometerFloor = floor
	case "BAROMETER_SAMPLE_INTERVAL_MINUTES":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BAROMETER_SAMPLE_INTERVAL_MINUTES %q: %w", value, err)
		}
		c.BarometerSampleIntervalMinutes = minutes

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval
	case "DISPLAY_SINKS":
		c.DisplaySinks = splitList(value)
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value
	case "LOW_LIGHT_LUX":
		lux, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid LOW_LIGHT_LUX %q: %w", value, err)
		}
		c.LowLightLux = lux
	case "LAYOUT_FILE":
		c.LayoutFile = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SampleInterval is the barometer sampling period.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.BarometerSampleIntervalMinutes) * time.Minute
}

// RenderInterval is the display refresh period.
func (c *Config) RenderInterval() time.Duration {
	return time.Duration(c.DisplayUpdateInterval) * time.Millisecond
}

// HasSink reports whether name is among the enabled display sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.DisplaySinks {
		if s == name {
			return true
		}
	}
	return false
}

// InitGlobal initializes the global configuration from file.
// Only the first call has any effect.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
