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

// Package speaker simulates the Arduboy's piezo speaker. The speaker element
// sits across pins 6 and 7 of port C and the firmware drives it by toggling
// the pins, usually with a timer. The package samples the differential level
// of the two pins at a fixed audio rate and forwards buffered samples to any
// attached mixers.
package speaker

import (
	"github.com/jetsetilly/ardugo/hardware/pins"
)

// SampleFreq is the rate at which the speaker pins are sampled, in samples
// per second.
const SampleFreq = 44100

// number of samples collected before the buffer is flushed to the mixers.
const bufferSize = 512

// amplitude of a driven speaker. the piezo is loud but not full-scale.
const amplitude = 8192

// Mixer receives buffered audio samples from the speaker. Sample values are
// signed 16bit PCM at SampleFreq.
type Mixer interface {
	SetAudio(samples []int16) error
	EndMixing() error
}

// Speaker converts the levels of the two speaker pins into a PCM sample
// stream. Construct with NewSpeaker().
type Speaker struct {
	// differential level currently driven across the element
	level int16

	buffer []int16
	mixers []Mixer
}

// NewSpeaker is the preferred method of initialisation for the Speaker type.
// The speaker attaches itself to port C of the supplied pins.
func NewSpeaker(p *pins.Pins) *Speaker {
	sp := &Speaker{
		buffer: make([]int16, 0, bufferSize),
	}
	p.Attach(pins.PortC, sp.portWrite)
	return sp
}

// AddMixer attaches a mixer to the sample stream.
func (sp *Speaker) AddMixer(m Mixer) {
	sp.mixers = append(sp.mixers, m)
}

func (sp *Speaker) portWrite(value uint8) {
	a := value&0x40 != 0
	b := value&0x80 != 0

	switch {
	case a && !b:
		sp.level = amplitude
	case !a && b:
		sp.level = -amplitude
	default:
		// both pins at the same level leaves the element undriven
		sp.level = 0
	}
}

// Sample records the current speaker level. Clocked by the cycle scheduler at
// SampleFreq in virtual time, which keeps the audio stream synchronised with
// the simulation no matter how the wall clock behaves.
func (sp *Speaker) Sample() error {
	sp.buffer = append(sp.buffer, sp.level)
	if len(sp.buffer) >= bufferSize {
		return sp.flush()
	}
	return nil
}

func (sp *Speaker) flush() error {
	for _, m := range sp.mixers {
		if err := m.SetAudio(sp.buffer); err != nil {
			return err
		}
	}
	sp.buffer = sp.buffer[:0]
	return nil
}

// EndMixing flushes any buffered samples and tells every mixer that the
// stream has ended. Called once as the simulation winds down.
func (sp *Speaker) EndMixing() error {
	if len(sp.buffer) > 0 {
		if err := sp.flush(); err != nil {
			return err
		}
	}
	for _, m := range sp.mixers {
		if err := m.EndMixing(); err != nil {
			return err
		}
	}
	return nil
}
