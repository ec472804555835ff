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

package playmode

import (
	"strings"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/gui"
	"github.com/jetsetilly/ardugo/hardware"
	"github.com/jetsetilly/ardugo/hardware/peripherals/buttons"
	"github.com/jetsetilly/ardugo/userinput"
)

// KeyboardEventHandler applies a keyboard event to the simulation. Keys with
// no binding are ignored; the escape key ends the session.
func KeyboardEventHandler(ev gui.EventKeyboard, ard *hardware.Arduboy) error {
	if strings.ToUpper(ev.Key) == "ESCAPE" {
		if ev.Down {
			return curated.Errorf(hardware.PowerOff)
		}
		return nil
	}

	c, ok := userinput.KeyToControl(ev.Key)
	if !ok {
		return nil
	}

	ard.Buttons.PushEvent(buttons.InputEvent{Control: c, Pressed: ev.Down})

	return nil
}
