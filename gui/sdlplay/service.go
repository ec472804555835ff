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
	"github.com/jetsetilly/ardugo/gui"
	"github.com/jetsetilly/ardugo/hardware/peripherals/ssd1306"
	"github.com/jetsetilly/ardugo/logger"

	"github.com/veandco/go-sdl2/sdl"
)

func setupService() {
	// MOUSEMOTION events fill up the event queue quickly and there is
	// nothing on the board for a mouse to operate
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
}

// Service implements the gui.GUI interface.
//
// MUST ONLY be called from the #mainthread.
func (pl *SdlPlay) Service() {
	// loop until there are no more events to retrieve. servicing only one
	// event per call would leave queued events a frame behind
	empty := false
	for !empty {
		// check for SDL events, timing out straight away if there's nothing
		ev := sdl.WaitEventTimeout(1)

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			pl.send(gui.EventQuit{})

		case *sdl.KeyboardEvent:
			// the simulation suppresses repeated state at the pin but there
			// is no reason to send host key repeats at all
			if ev.Repeat == 0 {
				switch ev.Type {
				case sdl.KEYDOWN:
					pl.send(gui.EventKeyboard{
						Key:  sdl.GetKeyName(ev.Keysym.Sym),
						Down: true})
				case sdl.KEYUP:
					pl.send(gui.EventKeyboard{
						Key:  sdl.GetKeyName(ev.Keysym.Sym),
						Down: false})
				}
			}

		case nil:
			// WaitEventTimeout has timed out; the queue is empty
			empty = true
		}
	}

	pl.crit.Lock()
	defer pl.crit.Unlock()

	if !pl.frameReady {
		return
	}
	pl.frameReady = false

	if err := pl.texture.Update(nil, pl.pixels, ssd1306.Columns*pixelDepth); err != nil {
		logger.Logf("sdlplay", "%v", err)
		return
	}
	if err := pl.renderer.Copy(pl.texture, nil, nil); err != nil {
		logger.Logf("sdlplay", "%v", err)
		return
	}
	pl.renderer.Present()
}

// send an event to the session without ever blocking the main thread.
func (pl *SdlPlay) send(ev gui.Event) {
	if pl.events == nil {
		return
	}
	select {
	case pl.events <- ev:
	default:
		logger.Log("sdlplay", "event channel full: dropping event")
	}
}
