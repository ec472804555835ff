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
	"time"
)

// Sync keeps the simulation loop coupled to wall-clock time. Whenever the MCU
// requests an idle period the loop calls SleepUntil() with the virtual cycle
// at the end of that period. The sleep deadline is always computed relative
// to the single reference point captured by Start(), so scheduling slack in
// one sleep does not compound into the next.
//
// If the simulation is running behind wall-clock time, SleepUntil() returns
// immediately. There is no forced catch-up; lost time stays lost.
//
// SleepUntil() blocks the caller and must only ever be called from the
// simulation's own goroutine. It must never be called from the input/GUI
// side.
type Sync struct {
	freq Frequency

	// the wall-clock reference point. set exactly once, by Start(), before
	// the first call to SleepUntil()
	reference time.Time

	// when disabled, SleepUntil() is a no-op. used by the performance mode to
	// run the simulation as fast as the host allows
	disabled bool

	// replaceable for testing
	sleep func(time.Duration)
	now   func() time.Time
}

// NewSync is the preferred method of initialisation for the Sync type.
func NewSync(freq Frequency) *Sync {
	return &Sync{
		freq:  freq,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Start captures the wall-clock reference point. Calling Start() a second
// time has no effect.
func (s *Sync) Start() {
	if !s.reference.IsZero() {
		return
	}
	s.reference = s.now()
}

// Disable wall-clock synchronisation. SleepUntil() becomes a no-op.
func (s *Sync) Disable() {
	s.disabled = true
}

// Deficit returns how far wall-clock time lags behind the given virtual
// cycle. A zero or negative deficit means the simulation is on time or behind
// schedule.
func (s *Sync) Deficit(cycle uint64) time.Duration {
	deadline := s.freq.CyclesToDuration(cycle)
	elapsed := s.now().Sub(s.reference)
	return deadline - elapsed
}

// SleepUntil blocks until wall-clock time catches up with the given virtual
// cycle. Returns immediately if the simulation is behind schedule or if
// Start() has not been called.
func (s *Sync) SleepUntil(cycle uint64) {
	if s.disabled || s.reference.IsZero() {
		return
	}

	deficit := s.Deficit(cycle)
	if deficit <= 0 {
		return
	}

	s.sleep(deficit)
}
