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

package buttons

import (
	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/hardware/pins"
	"github.com/jetsetilly/ardugo/logger"
)

// Control identifies one of the board's buttons.
type Control int

// List of controls on the Arduboy board.
const (
	Up Control = iota
	Down
	Left
	Right
	A
	B
	NumControls
)

func (c Control) String() string {
	switch c {
	case Up:
		return "btn.up"
	case Down:
		return "btn.down"
	case Left:
		return "btn.left"
	case Right:
		return "btn.right"
	case A:
		return "btn.a"
	case B:
		return "btn.b"
	}
	return "btn.unknown"
}

// sentinel error for an event with an out-of-range control.
const NoSuchControl = "buttons: no such control (%d)"

// how the buttons are wired to MCU pins on the Arduboy board. read-only.
var wiring = [NumControls]struct {
	port pins.PortID
	pin  int
}{
	Up:    {pins.PortF, 7},
	Down:  {pins.PortF, 4},
	Left:  {pins.PortF, 5},
	Right: {pins.PortF, 6},
	A:     {pins.PortE, 6},
	B:     {pins.PortB, 4},
}

// InputEvent is a button transition on its way across the thread boundary.
type InputEvent struct {
	Control Control
	Pressed bool
}

// DefaultQueue is the capacity of the pushed-event queue.
const DefaultQueue = 32

// Buttons bridges asynchronous host input to the MCU's pin lines. Each
// button drives a pulled-up pin; pressing a button pulls its line low.
type Buttons struct {
	state [NumControls]struct {
		pressed bool
		line    *pins.Line
	}

	// events pushed onto the input queue by another goroutine. consumed by
	// Handle()
	pushed chan InputEvent
}

// NewButtons is the preferred method of initialisation for the Buttons type.
// A queue value of zero selects DefaultQueue.
func NewButtons(p *pins.Pins, queue int) (*Buttons, error) {
	if queue <= 0 {
		queue = DefaultQueue
	}

	b := &Buttons{
		pushed: make(chan InputEvent, queue),
	}

	for c := Control(0); c < NumControls; c++ {
		l, err := p.Line(c.String(), wiring[c].port, wiring[c].pin)
		if err != nil {
			return nil, curated.Errorf("buttons: %v", err)
		}

		// pull the pin up. an unpressed button reads high
		l.Raise(true)
		b.state[c].line = l
	}

	return b, nil
}

// HandleEvent processes a button transition, raising the button's line low
// for a press and high for a release. A transition to the state the button
// is already in is a no-op; repeat-key delivery from the host is suppressed
// here, at the edge.
//
// Returns true if the event caused a state change.
//
// This function touches simulation state. In the dual-thread execution model
// the host input goroutine must use PushEvent() instead.
func (b *Buttons) HandleEvent(c Control, pressed bool) (bool, error) {
	if c < 0 || c >= NumControls {
		return false, curated.Errorf(NoSuchControl, int(c))
	}

	if b.state[c].pressed == pressed {
		return false, nil
	}
	b.state[c].pressed = pressed

	// active low. pressing the button pulls the pulled-up pin to ground
	b.state[c].line.Raise(!pressed)

	return true, nil
}

// PushEvent queues a button transition for the simulation goroutine to pick
// up. The call never blocks: if the queue is full the event is dropped. An
// occasional dropped transition is preferable to stalling the host's input
// handling, and dropped events are rare enough that the following key edge
// corrects the state.
func (b *Buttons) PushEvent(ev InputEvent) {
	select {
	case b.pushed <- ev:
	default:
		logger.Logf("buttons", "pushed event queue full: dropping %s", ev.Control)
	}
}

// Handle all pending pushed events. Called once per iteration of the
// simulation loop; the queue is drained exhaustively so that queue length
// bounds input latency as well as memory.
func (b *Buttons) Handle() error {
	for {
		select {
		case ev := <-b.pushed:
			if _, err := b.HandleEvent(ev.Control, ev.Pressed); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Pressed returns the stable state of the control.
func (b *Buttons) Pressed(c Control) bool {
	if c < 0 || c >= NumControls {
		return false
	}
	return b.state[c].pressed
}
