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

// Package scheduler fires callbacks at virtual-cycle deadlines. Deadlines are
// held in a min-priority queue and the run loop calls Service() with the
// current cycle count; every callback whose deadline has been reached fires
// and returns its next deadline.
//
// Periodic callbacks are expected to compute their next deadline from the
// cycle at the time of firing, not from the previous deadline:
//
//	sch.Schedule(period, "luma", func(cycle uint64) uint64 {
//		...
//		return cycle + period
//	})
//
// A callback that fires late therefore does not trigger a burst of catch-up
// firings; the drift is simply accepted and accumulates. On a host that can
// keep up, the wall-clock synchronisation in the clock package stops the
// drift from ever being more than scheduling slack.
package scheduler
