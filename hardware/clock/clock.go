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

// Package clock defines the speed of the main MCU clock and the conversions
// between virtual cycle counts and real durations. The package also provides
// the Sync type, which keeps virtual time coupled to wall-clock time.
package clock

import "time"

// Frequency of the MCU clock in cycles per second.
type Frequency uint64

// The Arduboy board clocks its MCU at 16MHz.
const MHz16 = Frequency(16000000)

// CyclesToDuration converts a virtual cycle count to a real duration.
func (f Frequency) CyclesToDuration(cycles uint64) time.Duration {
	// splitting the calculation into whole seconds and remainder keeps the
	// nanosecond multiplication inside uint64 range for any cycle count
	secs := cycles / uint64(f)
	rem := cycles % uint64(f)
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/uint64(f))
}

// DurationToCycles converts a real duration to a virtual cycle count,
// rounding to the nearest cycle. At 16MHz a cycle is 62.5ns, which a
// time.Duration cannot represent exactly, so truncating here would lose a
// cycle on every round trip through CyclesToDuration.
func (f Frequency) DurationToCycles(d time.Duration) uint64 {
	secs := uint64(d / time.Second)
	rem := uint64(d % time.Second)
	return secs*uint64(f) + (rem*uint64(f)+uint64(time.Second)/2)/uint64(time.Second)
}

// MicrosecondsToCycles converts a period expressed in microseconds to a
// virtual cycle count.
func (f Frequency) MicrosecondsToCycles(us uint64) uint64 {
	return us * uint64(f) / 1000000
}
