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

package clock_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/ardugo/hardware/clock"
	"github.com/jetsetilly/ardugo/test"
)

func TestCyclesToDuration(t *testing.T) {
	test.Equate(t, clock.MHz16.CyclesToDuration(0) == 0, true)
	test.Equate(t, clock.MHz16.CyclesToDuration(16) == time.Microsecond, true)
	test.Equate(t, clock.MHz16.CyclesToDuration(16000000) == time.Second, true)

	// a cycle count large enough to overflow a naive nanosecond
	// multiplication (one hour of virtual time)
	test.Equate(t, clock.MHz16.CyclesToDuration(57600000000) == time.Hour, true)
}

func TestDurationToCycles(t *testing.T) {
	test.Equate(t, clock.MHz16.DurationToCycles(time.Microsecond), 16)
	test.Equate(t, clock.MHz16.DurationToCycles(time.Second), 16000000)
	test.Equate(t, clock.MHz16.DurationToCycles(time.Hour), 57600000000)
}

func TestMicrosecondsToCycles(t *testing.T) {
	test.Equate(t, clock.MHz16.MicrosecondsToCycles(1), 16)

	// the SSD1306 frame period
	test.Equate(t, clock.MHz16.MicrosecondsToCycles(7572), 121152)
}

func TestDurationToCyclesRounding(t *testing.T) {
	// one cycle at 16MHz is 62.5ns. CyclesToDuration truncates that to 62ns
	// so DurationToCycles must round to nearest or the cycle is lost
	test.Equate(t, clock.MHz16.DurationToCycles(62*time.Nanosecond), 1)
	test.Equate(t, clock.MHz16.DurationToCycles(31*time.Nanosecond), 0)
	test.Equate(t, clock.MHz16.DurationToCycles(32*time.Nanosecond), 1)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []uint64{1, 16, 121152, 16000000, 57600000000} {
		d := clock.MHz16.CyclesToDuration(c)
		test.Equate(t, clock.MHz16.DurationToCycles(d), c)
	}
}
