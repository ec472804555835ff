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

package hardware

import (
	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/firmware"
	"github.com/jetsetilly/ardugo/hardware/clock"
	"github.com/jetsetilly/ardugo/hardware/mcu"
	"github.com/jetsetilly/ardugo/hardware/peripherals/buttons"
	"github.com/jetsetilly/ardugo/hardware/peripherals/speaker"
	"github.com/jetsetilly/ardugo/hardware/peripherals/ssd1306"
	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/hardware/scheduler"
)

// RenderRatio is the number of display luminance updates per frame presented
// to the user. The panel refreshes far faster than a host display needs to.
const RenderRatio = 12

// FrameTrigger is implemented by anything that wants telling when a new
// frame should be presented.
type FrameTrigger interface {
	NewFrame() error
}

// Arduboy is the whole board: the MCU and everything wired to its pins.
type Arduboy struct {
	Freq clock.Frequency

	Core      mcu.Core
	Pins      *pins.Pins
	Display   *ssd1306.SSD1306
	Buttons   *buttons.Buttons
	Speaker   *speaker.Speaker
	Scheduler *scheduler.Scheduler
	Sync      *clock.Sync

	frameTriggers []FrameTrigger

	// number of luminance updates since power-on. the render trigger fires
	// on every RenderRatio'th update
	lumaCount uint64

	// set by scheduler callbacks, consumed by the run loop
	framePending bool
	syncPending  bool
	callbackErr  error
}

// NewArduboy is the preferred method of initialisation for the Arduboy type.
// The variant argument names the MCU fitted to the board.
func NewArduboy(variant string) (*Arduboy, error) {
	ard := &Arduboy{
		Freq: clock.MHz16,
	}

	ard.Pins = pins.NewPins()

	ard.Display = ssd1306.NewSSD1306()
	ard.Display.Connect(ard.Pins, ssd1306.ArduboyWiring)

	var err error

	ard.Core, err = mcu.New(variant, ard.Pins, ard.Display)
	if err != nil {
		return nil, curated.Errorf("arduboy: %v", err)
	}

	ard.Buttons, err = buttons.NewButtons(ard.Pins, 0)
	if err != nil {
		return nil, curated.Errorf("arduboy: %v", err)
	}

	ard.Speaker = speaker.NewSpeaker(ard.Pins)

	ard.Scheduler = scheduler.NewScheduler()
	ard.Sync = clock.NewSync(ard.Freq)

	ard.scheduleDisplay()
	ard.scheduleAudio()

	return ard, nil
}

// AttachFirmware loads a firmware image into the MCU's program memory and
// resets the core.
func (ard *Arduboy) AttachFirmware(img *firmware.Image) error {
	ard.Core.Reset()
	if err := ard.Core.LoadFlash(img.Data, img.Origin); err != nil {
		return curated.Errorf("arduboy: %v", err)
	}
	return nil
}

// AddFrameTrigger registers an implementation of FrameTrigger to be called
// whenever the render trigger fires.
func (ard *Arduboy) AddFrameTrigger(f FrameTrigger) {
	ard.frameTriggers = append(ard.frameTriggers, f)
}

// the display's luminance filter runs at the panel's own refresh cadence,
// clocked by the scheduler. note that the next deadline is computed from the
// cycle at firing, not from the previous deadline. when the simulation falls
// behind there is no burst of catch-up updates; the cadence simply resumes
// from where the simulation actually is.
func (ard *Arduboy) scheduleDisplay() {
	period := ard.Freq.MicrosecondsToCycles(ssd1306.FramePeriodUs)

	ard.Scheduler.ScheduleAfter(0, period, "display", func(cycle uint64) uint64 {
		ard.Display.UpdateLuma(ssd1306.LumaDecay, ssd1306.LumaIncrement)
		ard.lumaCount++
		if ard.lumaCount%RenderRatio == 0 {
			ard.framePending = true
		}
		ard.syncPending = true
		return cycle + period
	})
}

func (ard *Arduboy) scheduleAudio() {
	period := uint64(ard.Freq) / speaker.SampleFreq

	ard.Scheduler.ScheduleAfter(0, period, "audio", func(cycle uint64) uint64 {
		if err := ard.Speaker.Sample(); err != nil && ard.callbackErr == nil {
			ard.callbackErr = err
		}
		return cycle + period
	})
}

// End the simulation session, flushing anything the peripherals have
// buffered.
func (ard *Arduboy) End() error {
	return ard.Speaker.EndMixing()
}
