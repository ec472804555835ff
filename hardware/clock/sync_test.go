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

package clock

import (
	"testing"
	"time"

	"github.com/jetsetilly/ardugo/test"
)

// fake wall-clock for sync testing. time only moves when we say it does.
type fakeWallClock struct {
	now   time.Time
	slept time.Duration
}

func newFakeSync(freq Frequency) (*Sync, *fakeWallClock) {
	fake := &fakeWallClock{now: time.Unix(100, 0)}
	s := NewSync(freq)
	s.now = func() time.Time { return fake.now }
	s.sleep = func(d time.Duration) {
		fake.slept += d
		fake.now = fake.now.Add(d)
	}
	return s, fake
}

func TestSleepDeficit(t *testing.T) {
	s, fake := newFakeSync(MHz16)
	s.Start()

	// simulation requests an idle period ending one virtual second from
	// power-on. no wall-clock time has passed so the full second is slept
	s.SleepUntil(16000000)
	test.Equate(t, fake.slept == time.Second, true)

	// after the sleep, elapsed wall-clock time equals the deadline exactly
	test.Equate(t, s.Deficit(16000000) == 0, true)
}

func TestNoSleepWhenBehindSchedule(t *testing.T) {
	s, fake := newFakeSync(MHz16)
	s.Start()

	// wall-clock time is already past the deadline. the simulation is behind
	// schedule and there is no penalty and no forced catch-up
	fake.now = fake.now.Add(2 * time.Second)
	s.SleepUntil(16000000)
	test.Equate(t, fake.slept == 0, true)
}

func TestDeadlinesAreRelativeToReferencePoint(t *testing.T) {
	s, fake := newFakeSync(MHz16)
	s.Start()

	// a host stall between sleeps does not move the reference point: the
	// second sleep only makes up the remaining deficit
	s.SleepUntil(16000000)
	test.Equate(t, fake.slept == time.Second, true)

	fake.now = fake.now.Add(500 * time.Millisecond) // host stall
	fake.slept = 0
	s.SleepUntil(32000000)
	test.Equate(t, fake.slept == 500*time.Millisecond, true)
}

func TestStartIsIdempotent(t *testing.T) {
	s, fake := newFakeSync(MHz16)
	s.Start()

	ref := s.reference
	fake.now = fake.now.Add(time.Minute)
	s.Start()
	test.Equate(t, s.reference.Equal(ref), true)
}

func TestDisabledSyncNeverSleeps(t *testing.T) {
	s, fake := newFakeSync(MHz16)
	s.Start()
	s.Disable()

	s.SleepUntil(16000000)
	test.Equate(t, fake.slept == 0, true)
}

func TestSleepBeforeStart(t *testing.T) {
	s, fake := newFakeSync(MHz16)

	// without a reference point there is nothing to synchronise against
	s.SleepUntil(16000000)
	test.Equate(t, fake.slept == 0, true)
}
