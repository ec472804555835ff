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

// Package userinput maps host keyboard input to the Arduboy's controls. The
// mapping is shared by every front-end so that the keyboard layout does not
// change with the choice of GUI.
package userinput

import (
	"strings"

	"github.com/jetsetilly/ardugo/hardware/peripherals/buttons"
)

// KeyToControl translates a host key name, as reported by the GUI toolkit,
// to the control it operates. The second return value is false for keys with
// no binding.
//
// The directional pad is on the cursor keys. The A and B buttons are on Z
// and X, the common layout among Arduboy emulators.
func KeyToControl(key string) (buttons.Control, bool) {
	switch strings.ToUpper(key) {
	case "UP":
		return buttons.Up, true
	case "DOWN":
		return buttons.Down, true
	case "LEFT":
		return buttons.Left, true
	case "RIGHT":
		return buttons.Right, true
	case "Z":
		return buttons.A, true
	case "X":
		return buttons.B, true
	}
	return 0, false
}
