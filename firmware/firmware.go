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

// Package firmware loads Arduboy firmware images. Firmware is distributed as
// Intel HEX files, the format emitted by avr-objcopy and consumed by the
// bootloader.
package firmware

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/ardugo/curated"
)

// sentinel errors for the firmware loader.
const (
	InvalidRecord = "firmware: invalid record: %s"
	BadChecksum   = "firmware: checksum mismatch: %s"
	NoData        = "firmware: no data records in file"
)

// record types in an Intel HEX file. extended address records appear in
// images larger than 64KB, which cannot fit the MCU's flash anyway.
const (
	recordData = 0x00
	recordEOF  = 0x01
)

// Image is a decoded firmware image. Data is contiguous; gaps between the
// file's records are filled with 0xff, the erased state of flash.
type Image struct {
	Data   []uint8
	Origin uint32
}

// Load reads and decodes the named Intel HEX file.
func Load(filename string) (*Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("firmware: %v", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (*Image, error) {
	// byte values keyed by address. assembled into a contiguous image once
	// the extent is known
	sparse := make(map[uint32]uint8)
	origin := uint32(0)
	end := uint32(0)
	first := true

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			return nil, curated.Errorf(InvalidRecord, line)
		}

		rec, err := hex.DecodeString(line[1:])
		if err != nil || len(rec) < 5 {
			return nil, curated.Errorf(InvalidRecord, line)
		}

		count := int(rec[0])
		if len(rec) != count+5 {
			return nil, curated.Errorf(InvalidRecord, line)
		}

		var sum uint8
		for _, b := range rec {
			sum += b
		}
		if sum != 0 {
			return nil, curated.Errorf(BadChecksum, line)
		}

		addr := (uint32(rec[1]) << 8) | uint32(rec[2])

		switch rec[3] {
		case recordData:
			for i := 0; i < count; i++ {
				a := addr + uint32(i)
				sparse[a] = rec[4+i]
				if first || a < origin {
					origin = a
				}
				if first || a+1 > end {
					end = a + 1
				}
				first = false
			}
		case recordEOF:
			return assemble(sparse, origin, end, first)
		default:
			return nil, curated.Errorf(InvalidRecord, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("firmware: %v", err)
	}

	// a missing EOF record is tolerated
	return assemble(sparse, origin, end, first)
}

func assemble(sparse map[uint32]uint8, origin uint32, end uint32, empty bool) (*Image, error) {
	if empty {
		return nil, curated.Errorf(NoData)
	}

	img := &Image{
		Data:   make([]uint8, end-origin),
		Origin: origin,
	}
	for i := range img.Data {
		img.Data[i] = 0xff
	}
	for a, b := range sparse {
		img.Data[a-origin] = b
	}
	return img, nil
}
