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
	"strings"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/hardware/govern"
	"github.com/jetsetilly/ardugo/hardware/pins"
)

// Core is the view of an MCU exposed to the rest of the simulation. The run
// loop steps the core an instruction at a time, and its cycle counter is the
// timebase for everything else.
type Core interface {
	Reset()

	// copy a firmware image into program memory. origin is a byte address.
	LoadFlash(data []uint8, origin uint32) error

	// execute a single instruction. an error from Step() means the core has
	// left the Running state.
	Step() error

	// number of cycles executed since reset
	Cycle() uint64

	// whether the core has executed a SLEEP instruction and is waiting to be
	// woken. a sleeping core consumes no instructions but its cycle counter
	// still advances, through AdvanceCycles()
	Sleeping() bool
	Wake()

	// advance the cycle counter without executing instructions. used to
	// fast-forward a sleeping core to the next scheduled event
	AdvanceCycles(n uint64)

	State() govern.State
	PC() uint32
}

// SPIDevice receives bytes written to the MCU's SPI data register. The
// display controller is the only SPI device on the Arduboy board.
type SPIDevice interface {
	Write(data uint8)
}

// sentinel error for a variant with no core implementation.
const UnsupportedVariant = "mcu: unsupported variant: %s"

// New creates the core for the named MCU variant. The variant name is
// case-insensitive. An unsupported variant is an error the caller should
// treat as fatal.
func New(variant string, p *pins.Pins, spi SPIDevice) (Core, error) {
	switch strings.ToLower(variant) {
	case "atmega32u4":
		return newAVR(p, spi), nil
	}
	return nil, curated.Errorf(UnsupportedVariant, variant)
}
