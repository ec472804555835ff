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

// Package performance measures how fast the simulation runs on the host.
// Check() runs a firmware with wall-clock synchronisation disabled for a
// fixed period of real time and reports how much virtual time passed,
// optionally generating CPU and memory profiles.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/ardugo/curated"
	"github.com/jetsetilly/ardugo/firmware"
	"github.com/jetsetilly/ardugo/hardware"
)

// Check runs the named firmware as fast as the host allows for the given
// duration, writing a summary of the achieved simulation speed to output.
func Check(output io.Writer, profile bool, firmwareFile string, runTime string) error {
	duration, err := time.ParseDuration(runTime)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	img, err := firmware.Load(firmwareFile)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	ard, err := hardware.NewArduboy("atmega32u4")
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	if err := ard.AttachFirmware(img); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// no throttling. the point is to see how fast the host can go
	ard.Sync.Disable()

	frames := 0

	err = cpuProfile(profile, "cpu.profile", func() error {
		timesUp := make(chan bool, 1)
		time.AfterFunc(duration, func() {
			timesUp <- true
		})

		return ard.Run(func() error {
			frames++
			select {
			case <-timesUp:
				return curated.Errorf(hardware.PowerOff)
			default:
				return nil
			}
		})
	})
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	cycles := ard.Core.Cycle()
	simulated := ard.Freq.CyclesToDuration(cycles)
	ratio := simulated.Seconds() / duration.Seconds()

	output.Write([]byte(fmt.Sprintf("%d cycles in %.2f seconds (%.2fx real time, %d frames)\n",
		cycles, duration.Seconds(), ratio, frames)))

	return memProfile(profile, "mem.profile")
}
