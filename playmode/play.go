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

// Package playmode is the glue between the hardware simulation and a GUI.
// It runs the simulation loop and feeds GUI input events into the button
// bridge.
//
// Two execution models are supported. In the default dual-thread model the
// simulation runs on its own goroutine while the GUI is serviced elsewhere
// (for SDL, the main thread); input crosses over through the pushed-event
// queue. In the cooperative model everything runs on the calling goroutine
// and the GUI is serviced between frames.
package playmode

import (
	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/gui"
	"github.com/jetsetilly/ardugo/hardware"
)

// Play runs the simulation until the firmware ends or the user quits.
//
// When coop is true the GUI's Service() function is called between frames on
// this goroutine, which must then be the main thread. When coop is false the
// caller is responsible for servicing the GUI elsewhere.
func Play(ard *hardware.Arduboy, scr gui.GUI, events gui.Events, coop bool) error {
	scr.SetEventChannel(events)

	if coop {
		return ard.Run(func() error {
			scr.Service()
			return eventHandler(ard, events)
		})
	}

	return ard.Run(func() error {
		return eventHandler(ard, events)
	})
}

// drain the GUI event channel completely. called once per frame, on the
// simulation goroutine.
func eventHandler(ard *hardware.Arduboy, events gui.Events) error {
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case gui.EventQuit:
				return curated.Errorf(hardware.PowerOff)
			case gui.EventKeyboard:
				if err := KeyboardEventHandler(ev, ard); err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}
