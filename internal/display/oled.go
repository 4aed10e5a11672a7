// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/home_display/internal/grid"
	"github.com/relabs-tech/home_display/internal/hsv"
)

const (
	oledWidth  = 128
	oledHeight = 64
	blockPx    = oledHeight / grid.Size
	captionX   = grid.Size*blockPx + 4

	// cells darker than this L* are drawn unlit
	litLightness = 0.15

	contrastBright byte = 0xFF
	contrastDim    byte = 0x10
)

// OLED mirrors the matrix on a 128x64 SSD1306: the grid as 8x8 pixel blocks on
// the left, the caption on the right.
type OLED struct {
	bus      i2c.BusCloser
	dev      *ssd1306.Dev
	img      *image1bit.VerticalLSB
	lowLight bool
}

// NewOLED opens the display on the named I2C bus ("" for the first one).
func NewOLED(busName string) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: OLED initialized on I2C bus %q", busName)

	o := &OLED{
		bus: bus,
		dev: dev,
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, oledWidth, oledHeight)),
	}

	// Show splash screen
	if err := o.Render(Frame{Caption: []string{"home", "display", "waiting"}}); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}
	return o, nil
}

func (o *OLED) Name() string { return "oled" }

// Render draws f and adjusts contrast when the ambient light flag flips.
func (o *OLED) Render(f Frame) error {
	if f.LowLight != o.lowLight {
		level := contrastBright
		if f.LowLight {
			level = contrastDim
		}
		if err := o.dev.SetContrast(level); err != nil {
			return fmt.Errorf("set contrast: %w", err)
		}
		o.lowLight = f.LowLight
	}
	drawFrame(o.img, f)
	return o.dev.Draw(o.dev.Bounds(), o.img, image.Point{})
}

// Close blanks the panel and releases the bus.
func (o *OLED) Close() error {
	if err := o.dev.Halt(); err != nil {
		o.bus.Close()
		return err
	}
	return o.bus.Close()
}

// drawFrame renders f into a 1-bit image.
func drawFrame(img *image1bit.VerticalLSB, f Frame) {
	// Blank image
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			if !lit(f.Pixels[x+y*grid.Size]) {
				continue
			}
			// leave a one pixel gutter between blocks
			r := image.Rect(x*blockPx, y*blockPx, (x+1)*blockPx-1, (y+1)*blockPx-1)
			draw.Draw(img, r, &image.Uniform{image1bit.On}, image.Point{}, draw.Src)
		}
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range f.Caption {
		if i >= 4 {
			break
		}
		drawer.Dot = fixed.P(captionX, 13*(i+1))
		drawer.DrawString(line)
	}
}

func lit(px hsv.RGB) bool {
	c, ok := colorful.MakeColor(px)
	if !ok {
		return false
	}
	l, _, _ := c.Lab()
	return l >= litLightness
}
