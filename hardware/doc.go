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

// Package hardware assembles the complete Arduboy board from its parts: the
// MCU, the IO pins, the display, the buttons and the speaker, with the cycle
// scheduler and the wall-clock synchroniser holding it all to time.
//
// The Run() function is the simulation loop. It steps the MCU an instruction
// at a time, services the scheduler against the MCU's cycle counter, and
// fast-forwards across SLEEP periods. Everything in this package and below
// it runs on a single goroutine; the only values read from outside are the
// display's luminance buffer and the pushed-event queue, which are designed
// for it.
package hardware
