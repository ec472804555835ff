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

// Package govern defines the state of the running simulation. The transition
// set is small and closed: Running may move to Halted or Crashed; Halted and
// Crashed are terminal. Reaching a terminal state ends the run loop cleanly,
// it is not an error.
package govern

// State of the simulation.
type State int

// List of possible simulation states.
const (
	// the MCU is executing instructions (or sleeping between them)
	Running State = iota

	// the MCU has executed a halting instruction or the user has ended the
	// session
	Halted

	// the MCU has encountered an instruction it cannot execute. the state of
	// the simulation can no longer be trusted
	Crashed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Crashed:
		return "crashed"
	}
	return "unknown"
}

// Terminal returns true if the state can never transition to another state.
func (s State) Terminal() bool {
	return s == Halted || s == Crashed
}
