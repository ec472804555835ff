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
	"testing"

	"github.com/jetsetilly/ardugo/hardware/govern"
	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/test"
)

type captureSPI struct {
	written []uint8
}

func (c *captureSPI) Write(data uint8) {
	c.written = append(c.written, data)
}

// load a program into flash, words hand-assembled from the instruction set
// summary in the datasheet.
func loadWords(t *testing.T, core *avr, words ...uint16) {
	t.Helper()
	data := make([]uint8, 0, len(words)*2)
	for _, w := range words {
		data = append(data, uint8(w&0xff), uint8(w>>8))
	}
	test.ExpectedSuccess(t, core.LoadFlash(data, 0))
}

func steps(t *testing.T, core *avr, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		test.ExpectedSuccess(t, core.Step())
	}
}

func TestFactory(t *testing.T) {
	p := pins.NewPins()

	core, err := New("ATmega32u4", p, nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, core.State() == govern.Running, true)

	_, err = New("attiny85", p, nil)
	test.ExpectedFailure(t, err)
}

func TestPortOutput(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// ldi r16, 0x55 / out PORTB, r16
	loadWords(t, core,
		0xe505,
		0xb905,
	)
	steps(t, core, 2)

	test.Equate(t, p.Output(pins.PortB), 0x55)
	test.Equate(t, core.Cycle() == 2, true)
}

func TestPortInput(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	l, err := p.Line("test", pins.PortF, 7)
	test.ExpectedSuccess(t, err)
	l.Raise(true)

	// in r18, PINF
	loadWords(t, core, 0xb12f)
	steps(t, core, 1)

	test.Equate(t, core.data[18], 0x80)
}

func TestBitSetOnLiveLevels(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// the pin level register holds no stored value of its own. sbi must
	// read-modify-write the live levels, not the stale data space byte
	l, err := p.Line("test", pins.PortF, 7)
	test.ExpectedSuccess(t, err)
	l.Raise(true)

	// sbi PINF, 0
	loadWords(t, core, 0x9a78)
	steps(t, core, 1)

	test.Equate(t, core.data[regPINF], 0x81)
}

func TestSPITransfer(t *testing.T) {
	p := pins.NewPins()
	spi := &captureSPI{}
	core := newAVR(p, spi)

	// ldi r17, 0xaf / out SPDR, r17
	loadWords(t, core,
		0xea1f,
		0xbd1e,
	)
	steps(t, core, 2)

	test.Equate(t, len(spi.written), 1)
	test.Equate(t, spi.written[0], 0xaf)

	// the transfer-complete flag is raised immediately
	test.Equate(t, core.data[regSPSR]&0x80, 0x80)
}

func TestCountingLoop(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// ldi r16, 3
	// loop: subi r16, 1
	// brne loop
	loadWords(t, core,
		0xe003,
		0x5001,
		0xf7f1,
	)
	steps(t, core, 7)

	test.Equate(t, core.data[16], 0)
	test.Equate(t, core.sreg(flagZ), true)
	test.Equate(t, core.pc == 3, true)

	// ldi + 2 taken branches + 1 untaken + 3 subi
	test.Equate(t, core.cycle == 9, true)
}

func TestCallReturn(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	sp := core.sp()

	// rcall .+2 / nop / ret
	loadWords(t, core,
		0xd001,
		0x0000,
		0x9508,
	)

	steps(t, core, 1)
	test.Equate(t, core.pc == 2, true)
	test.Equate(t, core.sp() == sp-2, true)

	steps(t, core, 1)
	test.Equate(t, core.pc == 1, true)
	test.Equate(t, core.sp() == sp, true)
}

func TestSleepAndWake(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// sleep / ldi r16, 1
	loadWords(t, core,
		0x9588,
		0xe001,
	)

	steps(t, core, 1)
	test.Equate(t, core.Sleeping(), true)

	// a sleeping core executes nothing
	steps(t, core, 1)
	test.Equate(t, core.data[16], 0)

	// fast-forward, wake, resume
	cycle := core.Cycle()
	core.AdvanceCycles(1000)
	test.Equate(t, core.Cycle() == cycle+1000, true)

	core.Wake()
	steps(t, core, 1)
	test.Equate(t, core.data[16], 1)
}

func TestHaltOnSpin(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// rjmp .-2 with interrupts disabled is the end of the program
	loadWords(t, core, 0xcfff)
	steps(t, core, 1)

	test.Equate(t, core.State() == govern.Halted, true)

	// stepping a halted core is an error
	test.ExpectedFailure(t, core.Step())
}

func TestCrashOnUnknownOpcode(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// MUL is not implemented
	loadWords(t, core, 0x9fff)
	test.ExpectedFailure(t, core.Step())
	test.Equate(t, core.State() == govern.Crashed, true)
}

func TestFlashOverflow(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	err := core.LoadFlash(make([]uint8, 16), flashSize-8)
	test.ExpectedFailure(t, err)
}

func TestSixteenBitArithmetic(t *testing.T) {
	p := pins.NewPins()
	core := newAVR(p, nil)

	// ldi r24, 0xff / ldi r25, 0x00 / adiw r24, 1
	loadWords(t, core,
		0xef8f,
		0xe090,
		0x9601,
	)
	steps(t, core, 3)

	test.Equate(t, core.wreg(24) == 0x0100, true)
	test.Equate(t, core.sreg(flagZ), false)
	test.Equate(t, core.sreg(flagC), false)
}
