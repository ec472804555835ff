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

package scheduler

import (
	"container/heap"

	"github.com/jetsetilly/ardugo/logger"
)

// Callback is run when virtual time reaches the callback's deadline. The
// cycle argument is the virtual cycle at the time of firing, which may be
// later than the deadline itself. The return value is the absolute cycle of
// the next firing; returning zero cancels the callback.
type Callback func(cycle uint64) uint64

type entry struct {
	deadline uint64
	label    string
	run      Callback

	// entries with equal deadlines fire in order of scheduling
	seq uint64
}

// min-heap of entries keyed by deadline. implements heap.Interface.
type deadlineQueue []*entry

func (q deadlineQueue) Len() int { return len(q) }

func (q deadlineQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}

func (q deadlineQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *deadlineQueue) Push(x interface{}) {
	*q = append(*q, x.(*entry))
}

func (q *deadlineQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler fires registered callbacks when the simulation reaches their
// virtual-cycle deadlines. It has no failure states, only late firing.
type Scheduler struct {
	queue deadlineQueue
	seq   uint64
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		queue: make(deadlineQueue, 0, 8),
	}
	heap.Init(&s.queue)
	return s
}

// Schedule a callback to fire when virtual time reaches the absolute cycle
// deadline. The label is used for logging only.
func (s *Scheduler) Schedule(deadline uint64, label string, run Callback) {
	s.seq++
	heap.Push(&s.queue, &entry{
		deadline: deadline,
		label:    label,
		run:      run,
		seq:      s.seq,
	})
}

// ScheduleAfter schedules a callback to fire period cycles after the given
// cycle.
func (s *Scheduler) ScheduleAfter(cycle uint64, period uint64, label string, run Callback) {
	s.Schedule(cycle+period, label, run)
}

// NextDeadline returns the nearest deadline in the queue. The second return
// value is false if the queue is empty.
func (s *Scheduler) NextDeadline() (uint64, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].deadline, true
}

// Len returns the number of callbacks waiting in the queue.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Service fires every callback whose deadline has been reached by the given
// cycle. A callback is rescheduled at whatever deadline it returns; the
// deadline must be in the future of the firing cycle or the callback is
// dropped.
func (s *Scheduler) Service(cycle uint64) {
	for len(s.queue) > 0 && s.queue[0].deadline <= cycle {
		e := heap.Pop(&s.queue).(*entry)

		next := e.run(cycle)
		if next == 0 {
			continue
		}
		if next <= cycle {
			// a callback that does not move its deadline forward would fire
			// again on the very next Service() call, forever
			logger.Logf("scheduler", "dropping %s: returned deadline %d is not beyond cycle %d", e.label, next, cycle)
			continue
		}

		e.deadline = next
		heap.Push(&s.queue, e)
	}
}
