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

package mcu

import (
	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/hardware/govern"
	"github.com/jetsetilly/ardugo/hardware/pins"
)

// sentinel errors for the AVR core.
const (
	UnknownOpcode = "mcu: unknown opcode %#04x at pc %#06x"
	FlashOverflow = "mcu: firmware image extends past end of flash (origin %#x, length %d)"
)

// memory geometry of the ATmega32u4.
const (
	flashSize = 32768 // bytes
	dataSize  = 0x0b00
	ramEnd    = dataSize - 1
)

// data space addresses of the IO registers the core services specially. IN,
// OUT, SBI, CBI and friends use the IO address, which is the data space
// address less 0x20.
const (
	regPINB = 0x23
	regPINC = 0x26
	regPIND = 0x29
	regPINE = 0x2c
	regPINF = 0x2f

	regPORTB = 0x25
	regPORTC = 0x28
	regPORTD = 0x2b
	regPORTE = 0x2e
	regPORTF = 0x31

	regSPSR = 0x4d
	regSPDR = 0x4e

	regSPL  = 0x5d
	regSPH  = 0x5e
	regSREG = 0x5f
)

// SREG flag bit positions.
const (
	flagC = 0
	flagZ = 1
	flagN = 2
	flagV = 3
	flagS = 4
	flagH = 5
	flagT = 6
	flagI = 7
)

// avr is a cycle-counting interpreter for the AVR instruction set, enough of
// it to run Arduboy firmware. Registers and IO live at their data space
// addresses, the way the hardware maps them.
type avr struct {
	pins *pins.Pins
	spi  SPIDevice

	// program memory, word addressed
	flash [flashSize / 2]uint16

	// registers, IO space and SRAM in one data space
	data [dataSize]uint8

	// pc is a word address
	pc uint32

	cycle    uint64
	sleeping bool
	state    govern.State
}

func newAVR(p *pins.Pins, spi SPIDevice) *avr {
	core := &avr{
		pins: p,
		spi:  spi,
	}
	core.Reset()
	return core
}

// Reset returns the core to its power-on state. Flash contents survive a
// reset.
func (core *avr) Reset() {
	for i := range core.data {
		core.data[i] = 0
	}
	core.pc = 0
	core.cycle = 0
	core.sleeping = false
	core.state = govern.Running

	// the stack pointer resets to the top of SRAM
	core.data[regSPL] = uint8(ramEnd & 0xff)
	core.data[regSPH] = uint8(ramEnd >> 8)
}

// LoadFlash copies a firmware image into program memory at the given byte
// address. Words are stored little-endian, as in the HEX file.
func (core *avr) LoadFlash(data []uint8, origin uint32) error {
	if int(origin)+len(data) > flashSize {
		return curated.Errorf(FlashOverflow, origin, len(data))
	}
	for i, b := range data {
		addr := origin + uint32(i)
		w := core.flash[addr>>1]
		if addr&1 == 0 {
			w = (w & 0xff00) | uint16(b)
		} else {
			w = (w & 0x00ff) | (uint16(b) << 8)
		}
		core.flash[addr>>1] = w
	}
	return nil
}

func (core *avr) Cycle() uint64 {
	return core.cycle
}

func (core *avr) PC() uint32 {
	return core.pc << 1
}

func (core *avr) State() govern.State {
	return core.state
}

func (core *avr) Sleeping() bool {
	return core.sleeping
}

func (core *avr) Wake() {
	core.sleeping = false
}

func (core *avr) AdvanceCycles(n uint64) {
	core.cycle += n
}

// readData reads a byte from data space, diverting reads of the pin level
// registers to the pins type.
func (core *avr) readData(addr uint16) uint8 {
	if int(addr) >= dataSize {
		return 0
	}

	switch addr {
	case regPINB:
		return core.pins.Levels(pins.PortB)
	case regPINC:
		return core.pins.Levels(pins.PortC)
	case regPIND:
		return core.pins.Levels(pins.PortD)
	case regPINE:
		return core.pins.Levels(pins.PortE)
	case regPINF:
		return core.pins.Levels(pins.PortF)
	}

	return core.data[addr]
}

// writeData writes a byte to data space, publishing port register writes to
// the pins type and SPI data register writes to the attached device.
func (core *avr) writeData(addr uint16, value uint8) {
	if int(addr) >= dataSize {
		return
	}
	core.data[addr] = value

	switch addr {
	case regPORTB:
		core.pins.WriteOutput(pins.PortB, value)
	case regPORTC:
		core.pins.WriteOutput(pins.PortC, value)
	case regPORTD:
		core.pins.WriteOutput(pins.PortD, value)
	case regPORTE:
		core.pins.WriteOutput(pins.PortE, value)
	case regPORTF:
		core.pins.WriteOutput(pins.PortF, value)
	case regSPDR:
		if core.spi != nil {
			core.spi.Write(value)
		}
		// the transfer completes immediately
		core.data[regSPSR] |= 0x80
	}
}

func (core *avr) sp() uint16 {
	return uint16(core.data[regSPL]) | (uint16(core.data[regSPH]) << 8)
}

func (core *avr) setSP(sp uint16) {
	core.data[regSPL] = uint8(sp & 0xff)
	core.data[regSPH] = uint8(sp >> 8)
}

func (core *avr) push(value uint8) {
	core.writeData(core.sp(), value)
	core.setSP(core.sp() - 1)
}

func (core *avr) pop() uint8 {
	core.setSP(core.sp() + 1)
	return core.readData(core.sp())
}

// pushPC pushes the current pc as a return address, low byte at the lower
// stack address.
func (core *avr) pushPC() {
	core.push(uint8(core.pc & 0xff))
	core.push(uint8(core.pc >> 8))
}

func (core *avr) popPC() uint32 {
	h := core.pop()
	l := core.pop()
	return (uint32(h) << 8) | uint32(l)
}

func (core *avr) sreg(flag int) bool {
	return core.data[regSREG]&(1<<flag) != 0
}

func (core *avr) setSREG(flag int, set bool) {
	if set {
		core.data[regSREG] |= 1 << flag
	} else {
		core.data[regSREG] &^= 1 << flag
	}
}

// Step executes a single instruction. A sleeping core executes nothing; the
// run loop is expected to fast-forward it with AdvanceCycles() instead.
func (core *avr) Step() error {
	if core.state != govern.Running {
		return curated.Errorf("mcu: stepped while %s", core.state)
	}
	if core.sleeping {
		return nil
	}

	opcodePC := core.pc
	opcode := core.flash[core.pc&(flashSize/2-1)]
	core.pc++

	if !core.execute(opcode) {
		core.state = govern.Crashed
		return curated.Errorf(UnknownOpcode, opcode, opcodePC<<1)
	}

	return nil
}
