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

// The read-only view of the display offered to the render path. In the
// dual-thread execution model the renderer reads while the simulation
// goroutine writes; a render may observe a partially updated buffer, which is
// acceptable for a visual display (the next frame corrects it).

// Luminance returns the persistence buffer, one byte per pixel in row-major
// order. The underlying array is shared with the filter, not copied.
func (sd *SSD1306) Luminance() []uint8 {
	return sd.luma[:]
}

// DisplayOn returns false if the panel has been turned off (command 0xAE).
// Nothing should be rendered for a panel that is off.
func (sd *SSD1306) DisplayOn() bool {
	return sd.displayOn
}

// Inverted returns true if the panel is in inverted mode: lit pixels are
// drawn dark on a bright background.
func (sd *SSD1306) Inverted() bool {
	return sd.inverted
}

// MirrorHorizontal returns true if the segment remap flag requires the image
// to be flipped left-to-right.
func (sd *SSD1306) MirrorHorizontal() bool {
	return sd.segRemap
}

// MirrorVertical returns true if the COM scan direction requires the image to
// be flipped top-to-bottom.
func (sd *SSD1306) MirrorVertical() bool {
	return sd.comRemap
}

// Opacity maps the panel's contrast register to an opacity scalar. The panel
// is clearly visible even at zero contrast, hence the offset.
func (sd *SSD1306) Opacity() float32 {
	return float32(sd.contrast)/512.0 + 0.5
}
