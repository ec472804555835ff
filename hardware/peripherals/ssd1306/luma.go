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

package ssd1306

// Default persistence constants. A pixel that stays lit gains
// LumaIncrement-LumaDecay per update until it saturates at 255; a pixel that
// turns off loses LumaDecay per update until it reaches 0. With these values
// a lit pixel saturates in two updates and fades out in three.
const (
	LumaDecay     = 256 / 3
	LumaIncrement = 256 * 2 / 3
)

// UpdateLuma applies one step of the persistence filter, folding the current
// VRAM contents into the luminance buffer:
//
//	luma' = clamp(luma - decay + (bit ? increment : 0), 0, 255)
//
// Each byte-column of a page is unpacked least-significant bit first; bit 0
// is the top pixel row of the page. The function must be called at a fixed
// virtual cadence (FramePeriodUs) for the decay rate to be meaningful.
func (sd *SSD1306) UpdateLuma(decay, increment uint8) {
	for p := 0; p < Pages; p++ {
		for c := 0; c < Columns; c++ {
			pxCol := sd.vram[p][c]
			i := p * 8 * Columns
			for bit := 0; bit < 8; bit++ {
				luma := int(sd.luma[i+c]) - int(decay)
				if pxCol&0x01 == 0x01 {
					luma += int(increment)
				}
				if luma < 0 {
					luma = 0
				} else if luma > 255 {
					luma = 255
				}
				sd.luma[i+c] = uint8(luma)
				pxCol >>= 1
				i += Columns
			}
		}
	}
}
