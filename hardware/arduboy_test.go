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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/firmware"
	"github.com/jetsetilly/ardugo/hardware"
	"github.com/jetsetilly/ardugo/hardware/govern"
	"github.com/jetsetilly/ardugo/hardware/peripherals/buttons"
	"github.com/jetsetilly/ardugo/test"
)

type frameCounter struct {
	frames int
}

func (f *frameCounter) NewFrame() error {
	f.frames++
	return nil
}

// build a firmware image from instruction words.
func image(words ...uint16) *firmware.Image {
	data := make([]uint8, 0, len(words)*2)
	for _, w := range words {
		data = append(data, uint8(w&0xff), uint8(w>>8))
	}
	return &firmware.Image{Data: data}
}

func newRunnable(t *testing.T, words ...uint16) *hardware.Arduboy {
	t.Helper()

	ard, err := hardware.NewArduboy("atmega32u4")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ard.AttachFirmware(image(words...)))

	// tests must not be coupled to the wall clock
	ard.Sync.Disable()

	return ard
}

func TestRunFrames(t *testing.T) {
	// sleep / rjmp back to the sleep. the run loop fast-forwards across the
	// sleep periods so this finishes quickly despite the large cycle counts
	ard := newRunnable(t, 0x9588, 0xcffe)

	fc := &frameCounter{}
	ard.AddFrameTrigger(fc)

	frames := 0
	err := ard.Run(func() error {
		frames++
		if frames >= 3 {
			return curated.Errorf(hardware.PowerOff)
		}
		return nil
	})
	test.ExpectedSuccess(t, err)

	test.Equate(t, fc.frames, 3)

	// three frames of twelve luminance updates, 121152 cycles each
	test.Equate(t, ard.Core.Cycle() >= 3*12*121152, true)
}

func TestRunHalt(t *testing.T) {
	// rjmp .-2 with interrupts disabled: the program is over
	ard := newRunnable(t, 0xcfff)

	err := ard.Run(nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ard.Core.State() == govern.Halted, true)
}

func TestRunCrash(t *testing.T) {
	// an unimplemented opcode crashes the core and ends the run with an
	// error
	ard := newRunnable(t, 0x9fff)

	err := ard.Run(nil)
	test.ExpectedFailure(t, err)
	test.Equate(t, ard.Core.State() == govern.Crashed, true)
}

func TestRunInput(t *testing.T) {
	// in r18, PINF / rjmp .-2. reads the button port then halts
	ard := newRunnable(t, 0xb12f, 0xcfff)

	// a press pushed before the run is seen by the very first instruction
	ard.Buttons.PushEvent(buttons.InputEvent{Control: buttons.Up, Pressed: true})

	err := ard.Run(nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ard.Buttons.Pressed(buttons.Up), true)
}
