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
	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/logger"
)

// Dimensions of the display.
const (
	Columns = 128
	Rows    = 64
	Pages   = Rows / 8
)

// The controller refreshes the panel roughly every 7572us. The persistence
// filter is clocked at the same virtual cadence so that the decay curve is
// independent of how often the host renders.
const FramePeriodUs = 7572

// memory addressing modes, as set by the 0x20 command.
const (
	addrHorizontal = 0x00
	addrVertical   = 0x01
	addrPage       = 0x02
)

// Wiring associates the display's control signals with MCU pins. Read-only
// after construction.
type Wiring struct {
	ChipSelect      pins.PortID
	ChipSelectPin   int
	DataInstruction pins.PortID
	DataInstPin     int
	Reset           pins.PortID
	ResetPin        int
}

// ArduboyWiring is how the display is wired on the Arduboy board.
var ArduboyWiring = Wiring{
	ChipSelect:      pins.PortD,
	ChipSelectPin:   6,
	DataInstruction: pins.PortD,
	DataInstPin:     4,
	Reset:           pins.PortD,
	ResetPin:        7,
}

// SSD1306 is the OLED display controller. Bytes arrive over the SPI bus and
// are interpreted as commands or as VRAM data according to the
// data/instruction control pin.
type SSD1306 struct {
	// one bit per pixel, eight vertically stacked pixels per byte-column
	vram [Pages][Columns]uint8

	// the progressively fading image derived from vram. see luma.go
	luma [Rows * Columns]uint8

	// display state, set by commands
	displayOn  bool
	inverted   bool
	entireOn   bool
	segRemap   bool
	comRemap   bool
	contrast   uint8
	addressing uint8

	// VRAM write pointers and window
	page      int
	col       int
	pageStart int
	pageEnd   int
	colStart  int
	colEnd    int

	// levels of the control pins, updated from the MCU's port output
	chipSelected bool
	dataMode     bool
	resetLow     bool

	// a multi-byte command still waiting for arguments
	pendingCmd  uint8
	pendingArgs int
}

// NewSSD1306 is the preferred method of initialisation for the SSD1306 type.
func NewSSD1306() *SSD1306 {
	sd := &SSD1306{}
	sd.reset()
	return sd
}

func (sd *SSD1306) reset() {
	sd.vram = [Pages][Columns]uint8{}
	sd.luma = [Rows * Columns]uint8{}
	sd.displayOn = false
	sd.inverted = false
	sd.entireOn = false
	sd.segRemap = false
	sd.comRemap = false
	sd.contrast = 0x7f
	sd.addressing = addrPage
	sd.page = 0
	sd.col = 0
	sd.pageStart = 0
	sd.pageEnd = Pages - 1
	sd.colStart = 0
	sd.colEnd = Columns - 1
	sd.pendingArgs = 0
}

// Connect the display's control pins. SPI data arrives separately, through
// the Write() function.
func (sd *SSD1306) Connect(p *pins.Pins, w Wiring) {
	update := func(id pins.PortID, value uint8) {
		if w.ChipSelect == id {
			sd.chipSelected = value&(1<<w.ChipSelectPin) == 0
		}
		if w.DataInstruction == id {
			sd.dataMode = value&(1<<w.DataInstPin) != 0
		}
		if w.Reset == id {
			low := value&(1<<w.ResetPin) == 0
			if low && !sd.resetLow {
				sd.reset()
			}
			sd.resetLow = low
		}
	}

	// the three control signals may share a port; attach once per distinct
	// port
	attached := map[pins.PortID]bool{}
	for _, id := range []pins.PortID{w.ChipSelect, w.DataInstruction, w.Reset} {
		if !attached[id] {
			attached[id] = true
			id := id
			p.Attach(id, func(value uint8) { update(id, value) })
		}
	}
}

// Write a byte arriving over the SPI bus. Ignored unless chip select is
// asserted.
func (sd *SSD1306) Write(data uint8) {
	if !sd.chipSelected {
		return
	}
	if sd.dataMode {
		sd.writeVRAM(data)
	} else {
		sd.command(data)
	}
}

func (sd *SSD1306) writeVRAM(data uint8) {
	sd.vram[sd.page][sd.col] = data

	switch sd.addressing {
	case addrHorizontal:
		sd.col++
		if sd.col > sd.colEnd {
			sd.col = sd.colStart
			sd.page++
			if sd.page > sd.pageEnd {
				sd.page = sd.pageStart
			}
		}
	case addrVertical:
		sd.page++
		if sd.page > sd.pageEnd {
			sd.page = sd.pageStart
			sd.col++
			if sd.col > sd.colEnd {
				sd.col = sd.colStart
			}
		}
	case addrPage:
		sd.col++
		if sd.col >= Columns {
			sd.col = 0
		}
	}
}

func (sd *SSD1306) command(data uint8) {
	if sd.pendingArgs > 0 {
		sd.commandArg(data)
		return
	}

	switch {
	case data == 0xae:
		sd.displayOn = false
	case data == 0xaf:
		sd.displayOn = true
	case data == 0xa6:
		sd.inverted = false
	case data == 0xa7:
		sd.inverted = true
	case data == 0xa4:
		sd.entireOn = false
	case data == 0xa5:
		sd.entireOn = true
	case data == 0xa0:
		sd.segRemap = false
	case data == 0xa1:
		sd.segRemap = true
	case data == 0xc0:
		sd.comRemap = false
	case data == 0xc8:
		sd.comRemap = true

	case data == 0x81: // contrast
		sd.pendingCmd = data
		sd.pendingArgs = 1
	case data == 0x20: // addressing mode
		sd.pendingCmd = data
		sd.pendingArgs = 1
	case data == 0x21: // column window
		sd.pendingCmd = data
		sd.pendingArgs = 2
	case data == 0x22: // page window
		sd.pendingCmd = data
		sd.pendingArgs = 2

	// single-argument commands the simulation accepts but has no use for:
	// charge pump, clock divide, multiplex ratio, display offset, precharge,
	// COM configuration, VCOM deselect
	case data == 0x8d, data == 0xd5, data == 0xa8, data == 0xd3,
		data == 0xd9, data == 0xda, data == 0xdb:
		sd.pendingCmd = data
		sd.pendingArgs = 1

	case data >= 0xb0 && data <= 0xb7: // page start (page addressing)
		sd.page = int(data & 0x07)
	case data&0xf0 == 0x00: // column start, low nibble
		sd.col = (sd.col & 0xf0) | int(data&0x0f)
	case data&0xf0 == 0x10: // column start, high nibble
		sd.col = (sd.col & 0x0f) | int(data&0x07)<<4
	case data&0xc0 == 0x40: // display start line. not modelled
		break

	default:
		logger.Logf("ssd1306", "unserviced command (%#02x)", data)
	}
}

func (sd *SSD1306) commandArg(data uint8) {
	sd.pendingArgs--

	switch sd.pendingCmd {
	case 0x81:
		sd.contrast = data
	case 0x20:
		sd.addressing = data & 0x03
	case 0x21:
		if sd.pendingArgs == 1 {
			sd.colStart = int(data) & (Columns - 1)
			sd.col = sd.colStart
		} else {
			sd.colEnd = int(data) & (Columns - 1)
		}
	case 0x22:
		if sd.pendingArgs == 1 {
			sd.pageStart = int(data) & (Pages - 1)
			sd.page = sd.pageStart
		} else {
			sd.pageEnd = int(data) & (Pages - 1)
		}
	}
}

// VRAM returns the bit-packed framebuffer as written by the firmware. Used by
// tests; the render path reads the luminance buffer instead.
func (sd *SSD1306) VRAM() [Pages][Columns]uint8 {
	return sd.vram
}
