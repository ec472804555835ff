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

package pins_test

import (
	"testing"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/test"
)

func TestRaise(t *testing.T) {
	p := pins.NewPins()

	l, err := p.Line("btn.up", pins.PortF, 7)
	test.ExpectedSuccess(t, err)
	test.Equate(t, l.High(), false)

	// pull up at wiring time
	l.Raise(true)
	test.Equate(t, l.High(), true)
	test.Equate(t, p.Levels(pins.PortF), 0x80)

	l.Raise(false)
	test.Equate(t, l.High(), false)
	test.Equate(t, p.Levels(pins.PortF), 0x00)
}

func TestNoSuchPin(t *testing.T) {
	p := pins.NewPins()

	_, err := p.Line("bad", pins.PortID('Z'), 0)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, pins.NoSuchPin), true)

	_, err = p.Line("bad", pins.PortB, 8)
	test.ExpectedFailure(t, err)
}

func TestOutputAttachment(t *testing.T) {
	p := pins.NewPins()

	var seen []uint8
	p.Attach(pins.PortD, func(value uint8) {
		seen = append(seen, value)
	})

	p.WriteOutput(pins.PortD, 0x50)
	p.WriteOutput(pins.PortD, 0x50)
	p.WriteOutput(pins.PortD, 0x10)

	// every write is published, even unchanged values
	test.Equate(t, len(seen), 3)
	test.Equate(t, seen[2], 0x10)
	test.Equate(t, p.Output(pins.PortD), 0x10)
}

func TestPortsAreIndependent(t *testing.T) {
	p := pins.NewPins()

	a, _ := p.Line("a", pins.PortE, 6)
	b, _ := p.Line("b", pins.PortB, 4)

	a.Raise(true)
	test.Equate(t, p.Levels(pins.PortE), 0x40)
	test.Equate(t, p.Levels(pins.PortB), 0x00)
	test.Equate(t, b.High(), false)
}
