// This file is part of Ardugo.
//
// Ardugo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Ardugo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Ardugo.  If not, see <https://www.gnu.org/licenses/>.

package ssd1306

import (
	"testing"

	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/test"
)

// wire a display to a fresh set of pins with chip select asserted and
// data/instruction in command mode.
func wiredDisplay() (*SSD1306, *pins.Pins) {
	p := pins.NewPins()
	sd := NewSSD1306()
	sd.Connect(p, ArduboyWiring)

	// reset high, chip select low (asserted), d/c low (command)
	p.WriteOutput(pins.PortD, 0x80)
	return sd, p
}

func (sd *SSD1306) commands(data ...uint8) {
	for _, d := range data {
		sd.Write(d)
	}
}

func TestChipSelect(t *testing.T) {
	sd, p := wiredDisplay()

	// deassert chip select; writes are ignored
	p.WriteOutput(pins.PortD, 0x80|0x40)
	sd.Write(0xaf)
	test.Equate(t, sd.DisplayOn(), false)

	p.WriteOutput(pins.PortD, 0x80)
	sd.Write(0xaf)
	test.Equate(t, sd.DisplayOn(), true)
}

func TestFlagsAndContrast(t *testing.T) {
	sd, _ := wiredDisplay()

	sd.commands(0xaf, 0xa7, 0xa1, 0xc8, 0x81, 0xff)
	test.Equate(t, sd.DisplayOn(), true)
	test.Equate(t, sd.Inverted(), true)
	test.Equate(t, sd.MirrorHorizontal(), true)
	test.Equate(t, sd.MirrorVertical(), true)

	// opacity = contrast/512 + 0.5
	test.Equate(t, sd.Opacity() == float32(255)/512.0+0.5, true)

	sd.commands(0x81, 0x00)
	test.Equate(t, sd.Opacity() == 0.5, true)
}

func TestHorizontalAddressing(t *testing.T) {
	sd, p := wiredDisplay()

	// horizontal addressing, column window 126..127, page window 0..1
	sd.commands(0x20, 0x00, 0x21, 126, 127, 0x22, 0, 1)

	// d/c high: data mode
	p.WriteOutput(pins.PortD, 0x80|0x10)
	sd.commands(0x11, 0x22, 0x33, 0x44)

	vram := sd.VRAM()
	test.Equate(t, vram[0][126], 0x11)
	test.Equate(t, vram[0][127], 0x22)
	test.Equate(t, vram[1][126], 0x33)
	test.Equate(t, vram[1][127], 0x44)

	// window exhausted; write pointer wraps to the window origin
	sd.commands(0x55)
	vram = sd.VRAM()
	test.Equate(t, vram[0][126], 0x55)
}

func TestPageAddressing(t *testing.T) {
	sd, p := wiredDisplay()

	// page addressing (the power-on default): page 3, column 0x42
	sd.commands(0xb3, 0x02, 0x14)

	p.WriteOutput(pins.PortD, 0x80|0x10)
	sd.commands(0xaa, 0xbb)

	vram := sd.VRAM()
	test.Equate(t, vram[3][0x42], 0xaa)
	test.Equate(t, vram[3][0x43], 0xbb)
}

func TestResetPin(t *testing.T) {
	sd, p := wiredDisplay()

	sd.commands(0xaf, 0x81, 0xc0)
	test.Equate(t, sd.DisplayOn(), true)

	// falling edge on the reset pin returns the display to power-on state
	p.WriteOutput(pins.PortD, 0x00)
	test.Equate(t, sd.DisplayOn(), false)
	test.Equate(t, sd.Opacity() == float32(0x7f)/512.0+0.5, true)
}
