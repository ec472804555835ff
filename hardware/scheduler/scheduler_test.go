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

package scheduler_test

import (
	"testing"

	"github.com/jetsetilly/ardugo/hardware/scheduler"
	"github.com/jetsetilly/ardugo/test"
)

func TestNeverFiresEarly(t *testing.T) {
	sch := scheduler.NewScheduler()

	fired := 0
	sch.Schedule(100, "test", func(cycle uint64) uint64 {
		fired++
		return 0
	})

	sch.Service(50)
	test.Equate(t, fired, 0)

	sch.Service(99)
	test.Equate(t, fired, 0)

	sch.Service(100)
	test.Equate(t, fired, 1)

	// a cancelled callback does not fire again
	sch.Service(1000)
	test.Equate(t, fired, 1)
}

func TestPeriodicRebaseOnFiringCycle(t *testing.T) {
	sch := scheduler.NewScheduler()

	const period = 100

	var firedAt []uint64
	sch.Schedule(period, "test", func(cycle uint64) uint64 {
		firedAt = append(firedAt, cycle)
		return cycle + period
	})

	// the callback is serviced late every time. the next deadline rebases on
	// the firing cycle so there is exactly one firing per Service() call, not
	// a catch-up burst
	sch.Service(250)
	sch.Service(500)
	sch.Service(501)
	test.Equate(t, len(firedAt), 2)
	test.Equate(t, firedAt[0], 250)
	test.Equate(t, firedAt[1], 500)

	d, ok := sch.NextDeadline()
	test.Equate(t, ok, true)
	test.Equate(t, d, 600)
}

func TestDeadlineMonotonicity(t *testing.T) {
	sch := scheduler.NewScheduler()

	const period = 7

	var prevDeadline uint64
	sch.Schedule(period, "test", func(cycle uint64) uint64 {
		next := cycle + period

		// every returned deadline is strictly greater than the cycle at which
		// it was computed and never less than the previous deadline
		test.Equate(t, next > cycle, true)
		test.Equate(t, next >= prevDeadline, true)
		prevDeadline = next
		return next
	})

	// irregular servicing cadence
	for _, cycle := range []uint64{3, 7, 8, 20, 21, 22, 29, 100, 110} {
		sch.Service(cycle)
	}
}

func TestFiringOrder(t *testing.T) {
	sch := scheduler.NewScheduler()

	var order []string
	sch.Schedule(200, "b", func(cycle uint64) uint64 {
		order = append(order, "b")
		return 0
	})
	sch.Schedule(100, "a", func(cycle uint64) uint64 {
		order = append(order, "a")
		return 0
	})

	// callbacks with equal deadlines fire in scheduling order
	sch.Schedule(200, "c", func(cycle uint64) uint64 {
		order = append(order, "c")
		return 0
	})

	sch.Service(200)
	test.Equate(t, len(order), 3)
	test.Equate(t, order[0], "a")
	test.Equate(t, order[1], "b")
	test.Equate(t, order[2], "c")
}

func TestNextDeadline(t *testing.T) {
	sch := scheduler.NewScheduler()

	_, ok := sch.NextDeadline()
	test.Equate(t, ok, false)

	sch.Schedule(500, "far", func(cycle uint64) uint64 { return 0 })
	sch.Schedule(100, "near", func(cycle uint64) uint64 { return 0 })

	d, ok := sch.NextDeadline()
	test.Equate(t, ok, true)
	test.Equate(t, d, 100)
	test.Equate(t, sch.Len(), 2)
}

func TestMisbehavingCallbackIsDropped(t *testing.T) {
	sch := scheduler.NewScheduler()

	fired := 0
	sch.Schedule(10, "stuck", func(cycle uint64) uint64 {
		fired++
		return cycle // never advances
	})

	sch.Service(10)
	sch.Service(20)
	test.Equate(t, fired, 1)
	test.Equate(t, sch.Len(), 0)
}
