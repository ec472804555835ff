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

// Package pins models the IO pins of the MCU as named signal lines grouped
// into ports. External devices (buttons) drive input lines with Raise();
// the MCU publishes its port output registers through WriteOutput() and
// devices wired to output pins (the display's control pins, the speaker)
// observe them through Attach().
//
// A Line is the interrupt-line abstraction of the simulation: raising a line
// low on a pulled-up pin is how a button press reaches the MCU.
package pins

import (
	"fmt"

	"github.com/jetsetilly/ardugo/curated"
)

// PortID identifies an IO port by its datasheet letter.
type PortID rune

// The ports present on the ATmega32u4 package.
const (
	PortB PortID = 'B'
	PortC PortID = 'C'
	PortD PortID = 'D'
	PortE PortID = 'E'
	PortF PortID = 'F'
)

// sentinel error for an unknown port/pin combination.
const NoSuchPin = "pins: no such pin: %c%d"

type port struct {
	id PortID

	// levels driven onto the port from outside. bit set = high
	input uint8

	// the output register most recently written by the MCU
	output uint8

	// notified on every output register write
	attached []func(value uint8)
}

// Pins is the collection of IO ports. Construct with NewPins().
type Pins struct {
	ports map[PortID]*port
}

// NewPins is the preferred method of initialisation for the Pins type.
func NewPins() *Pins {
	p := &Pins{
		ports: make(map[PortID]*port),
	}
	for _, id := range []PortID{PortB, PortC, PortD, PortE, PortF} {
		p.ports[id] = &port{id: id}
	}
	return p
}

// Line represents a single input pin as a raisable signal line.
type Line struct {
	label string
	port  *port
	pin   int
}

// Line allocates a signal line for the specified pin. The label is used for
// String() output only.
func (p *Pins) Line(label string, id PortID, pin int) (*Line, error) {
	prt, ok := p.ports[id]
	if !ok || pin < 0 || pin > 7 {
		return nil, curated.Errorf(NoSuchPin, id, pin)
	}
	return &Line{label: label, port: prt, pin: pin}, nil
}

func (l *Line) String() string {
	return fmt.Sprintf("%s (%c%d)", l.label, l.port.id, l.pin)
}

// Raise drives the line to the given level.
func (l *Line) Raise(high bool) {
	if high {
		l.port.input |= 1 << l.pin
	} else {
		l.port.input &^= 1 << l.pin
	}
}

// High returns the current level of the line.
func (l *Line) High() bool {
	return l.port.input&(1<<l.pin) != 0
}

// Levels returns the input levels of the port's pins, as driven from outside
// the MCU. Pins with nothing attached read low; a pulled-up pin must be
// raised high explicitly at wiring time.
func (p *Pins) Levels(id PortID) uint8 {
	if prt, ok := p.ports[id]; ok {
		return prt.input
	}
	return 0
}

// Output returns the output register most recently written to the port.
func (p *Pins) Output(id PortID) uint8 {
	if prt, ok := p.ports[id]; ok {
		return prt.output
	}
	return 0
}

// WriteOutput publishes a new value of the port's output register. Called by
// the MCU; attached devices are notified in attachment order.
func (p *Pins) WriteOutput(id PortID, value uint8) {
	prt, ok := p.ports[id]
	if !ok {
		return
	}
	prt.output = value
	for _, f := range prt.attached {
		f(value)
	}
}

// Attach a device to the port's output register. The function is called on
// every write, including writes that do not change the value.
func (p *Pins) Attach(id PortID, f func(value uint8)) {
	if prt, ok := p.ports[id]; ok {
		prt.attached = append(prt.attached, f)
	}
}
