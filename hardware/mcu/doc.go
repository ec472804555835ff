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

// Package mcu implements the processor at the centre of the simulation. The
// only supported variant is the ATmega32u4 fitted to the Arduboy, created
// through the New() factory so that the rest of the system never depends on
// the concrete core.
//
// The core is an instruction-at-a-time interpreter for the AVR instruction
// set. It does not model the interrupt system; firmware that idles with the
// SLEEP instruction is woken explicitly by the run loop when a scheduled
// event fires. An opcode outside the implemented set moves the core to the
// Crashed state rather than guessing.
//
// The cycle counter is the timebase for the whole simulation. Peripherals
// never count cycles themselves; they schedule callbacks against this
// counter through the scheduler package.
package mcu
