// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/home_display/internal/env"
)

// Barometer is a pressure source.
type Barometer interface {
	Read() (env.Sample, error)
	Close() error
}

// BMXX80 reads a Bosch BMP180/BMP280/BME280.
type BMXX80 struct {
	dev *bmxx80.Dev
	bus io.Closer
}

// OpenBMXX80 opens the sensor on an "i2c" or "spi" bus. device names the bus
// or port ("" selects the first one); addr is only used on I2C.
func OpenBMXX80(busType, device string, addr uint16) (*BMXX80, error) {
	if busType != "i2c" && busType != "spi" {
		return nil, fmt.Errorf("unsupported barometer bus %q", busType)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	var (
		dev *bmxx80.Dev
		bus io.Closer
	)
	switch busType {
	case "i2c":
		b, err := i2creg.Open(device)
		if err != nil {
			return nil, fmt.Errorf("BMP I2C open: %w", err)
		}
		bus = b
		dev, err = bmxx80.NewI2C(b, addr, &bmxx80.DefaultOpts)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("BMP init: %w", err)
		}
	default:
		p, err := spireg.Open(device)
		if err != nil {
			return nil, fmt.Errorf("BMP SPI open: %w", err)
		}
		bus = p
		dev, err = bmxx80.NewSPI(p, &bmxx80.DefaultOpts)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("BMP init: %w", err)
		}
	}

	log.Printf("sensors: %s initialized on %s %q", dev, busType, device)
	return &BMXX80{dev: dev, bus: bus}, nil
}

// Read senses temperature and pressure.
func (b *BMXX80) Read() (env.Sample, error) {
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		return env.Sample{}, fmt.Errorf("BMP sense: %w", err)
	}

	return env.Sample{
		Source:      "bmxx80",
		Temperature: e.Temperature.Celsius(),
		Pressure:    float64(e.Pressure) / float64(physic.Pascal),
	}, nil
}

// Close halts the sensor and releases its bus.
func (b *BMXX80) Close() error {
	if err := b.dev.Halt(); err != nil {
		b.bus.Close()
		return err
	}
	return b.bus.Close()
}
