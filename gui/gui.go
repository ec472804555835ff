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

// Package gui defines the interface between the simulation session and a
// graphical front-end. Front-ends produce Event values; the session consumes
// them at its own pace.
package gui

import "io"

// Events is the channel over which a GUI sends input events to the session.
type Events chan Event

// Event is a report of user input from the GUI.
type Event interface{}

// EventQuit is sent when the user closes the window.
type EventQuit struct{}

// EventKeyboard is sent for every key press and release. Key is the host's
// name for the key, not a character.
type EventKeyboard struct {
	Key  string
	Down bool
}

// GUI is the interface implemented by graphical front-ends.
type GUI interface {
	// cleanup resources used by the GUI
	Destroy(io.Writer)

	// Service must only be called from the main thread, as part of a larger
	// loop. It must not block longer than necessary
	Service()

	// the channel on which input events are sent. events are dropped if the
	// channel is full
	SetEventChannel(Events)
}
