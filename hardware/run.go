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
	"github.com/jetsetilly/ardugo/hardware/govern"
	"github.com/jetsetilly/ardugo/logger"
)

// sentinel error returned by a continueCheck function to end the simulation
// cleanly.
const PowerOff = "power off"

// Run the simulation until the core reaches a terminal state or the
// continueCheck function returns an error. PowerOff from continueCheck is a
// clean shutdown, not an error.
//
// The continueCheck function is called once per frame. In the cooperative
// execution model it is where the GUI gets serviced.
func (ard *Arduboy) Run(continueCheck func() error) error {
	if continueCheck == nil {
		continueCheck = func() error { return nil }
	}

	// the wall-clock reference point is captured once, at power-on. every
	// sleep deadline from now on is relative to this moment
	ard.Sync.Start()

	for ard.Core.State() == govern.Running {
		// host input first, so a press is visible to the instructions about
		// to run
		if err := ard.Buttons.Handle(); err != nil {
			return curated.Errorf("run: %v", err)
		}

		if err := ard.Core.Step(); err != nil {
			return curated.Errorf("run: %v", err)
		}

		ard.Scheduler.Service(ard.Core.Cycle())

		// a sleeping core executes nothing until the next scheduled event.
		// jump straight there rather than spinning
		if ard.Core.Sleeping() {
			if next, ok := ard.Scheduler.NextDeadline(); ok && next > ard.Core.Cycle() {
				ard.Core.AdvanceCycles(next - ard.Core.Cycle())
				ard.Sync.SleepUntil(ard.Core.Cycle())
			}
			ard.Core.Wake()
			continue
		}

		if ard.callbackErr != nil {
			return curated.Errorf("run: %v", ard.callbackErr)
		}

		if ard.syncPending {
			ard.syncPending = false
			ard.Sync.SleepUntil(ard.Core.Cycle())
		}

		if ard.framePending {
			ard.framePending = false

			for _, f := range ard.frameTriggers {
				if err := f.NewFrame(); err != nil {
					return curated.Errorf("run: %v", err)
				}
			}

			if err := continueCheck(); err != nil {
				if curated.Is(err, PowerOff) {
					return nil
				}
				return curated.Errorf("run: %v", err)
			}
		}
	}

	logger.Logf("run", "core is %s after %d cycles", ard.Core.State(), ard.Core.Cycle())

	return nil
}
