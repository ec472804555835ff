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

package sdlplay

import (
	"sync"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/hardware/peripherals/speaker"

	"github.com/ebitengine/oto/v3"
)

// if the simulation gets this far ahead of the sound card, old samples are
// discarded. trading a click for unbounded latency
const maxBacklog = speaker.SampleFreq / 2 * 2 // half a second of 16bit mono

// sound streams speaker samples to the host's audio device. The device pulls
// from the backlog through Read(); the simulation goroutine pushes through
// setAudio().
type sound struct {
	ctx    *oto.Context
	player *oto.Player

	crit    sync.Mutex
	backlog []byte
}

func newSound() (*sound, error) {
	op := &oto.NewContextOptions{
		SampleRate:   speaker.SampleFreq,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("sound: %v", err)
	}
	<-ready

	snd := &sound{ctx: ctx}
	snd.player = ctx.NewPlayer(snd)
	snd.player.Play()

	return snd, nil
}

// Read implements the io.Reader interface, called by the audio device. An
// empty backlog reads as silence; the device must never be starved.
func (snd *sound) Read(p []byte) (int, error) {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	n := copy(p, snd.backlog)
	snd.backlog = snd.backlog[n:]

	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (snd *sound) setAudio(samples []int16) error {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	for _, s := range samples {
		snd.backlog = append(snd.backlog, byte(s&0xff), byte(uint16(s)>>8))
	}

	if len(snd.backlog) > maxBacklog {
		snd.backlog = snd.backlog[len(snd.backlog)-maxBacklog:]
	}

	return nil
}

func (snd *sound) endMixing() error {
	if snd.player == nil {
		return nil
	}
	err := snd.player.Close()
	snd.player = nil
	if err != nil {
		return curated.Errorf("sound: %v", err)
	}
	return nil
}
