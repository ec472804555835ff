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

import (
	"testing"

	"github.com/jetsetilly/ardugo/test"
)

func TestLumaScenario(t *testing.T) {
	sd := NewSSD1306()

	// single pixel at column 3 of page 0, row 2 of the page (bit 2)
	sd.vram[0][3] = 0x04
	px := 2*Columns + 3

	// held on: each update charges by increment-decay until saturation. the
	// decay and increment are applied together in one clamped step, so a dark
	// pixel gains 85 per update, not 170
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 85)
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 170)
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 255)
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 255)

	// turned off: linear decay back to zero
	sd.vram[0][3] = 0x00
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 170)
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 85)
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 0)

	// and it stays at zero
	sd.UpdateLuma(LumaDecay, LumaIncrement)
	test.Equate(t, sd.luma[px], 0)
}

func TestLumaIdentity(t *testing.T) {
	sd := NewSSD1306()

	sd.vram[4][60] = 0xff
	sd.luma[100] = 123
	before := sd.luma

	// zero decay and zero increment change nothing
	sd.UpdateLuma(0, 0)
	test.Equate(t, sd.luma == before, true)
}

func TestLumaConvergence(t *testing.T) {
	sd := NewSSD1306()

	// every pixel off, every luminance at maximum. ceil(255/85) updates
	// reach zero
	for i := range sd.luma {
		sd.luma[i] = 255
	}
	for i := 0; i < 3; i++ {
		sd.UpdateLuma(85, 170)
	}
	for i := range sd.luma {
		if sd.luma[i] != 0 {
			t.Fatalf("pixel %d did not converge to 0 (%d)", i, sd.luma[i])
		}
	}
}

func TestLumaSaturation(t *testing.T) {
	sd := NewSSD1306()

	// a lit pixel converges to a fixed point f = clamp(f - d + i, 0, 255)
	sd.vram[0][0] = 0x01
	for i := 0; i < 10; i++ {
		sd.UpdateLuma(85, 170)
	}
	f := sd.luma[0]
	sd.UpdateLuma(85, 170)
	test.Equate(t, sd.luma[0], f)
	test.Equate(t, f, 255)
}

func TestLumaBitOrder(t *testing.T) {
	sd := NewSSD1306()

	// least-significant bit is the top row of the page
	sd.vram[1][7] = 0x81
	sd.UpdateLuma(0, 255)

	top := (1*8+0)*Columns + 7
	bottom := (1*8+7)*Columns + 7
	test.Equate(t, sd.luma[top], 255)
	test.Equate(t, sd.luma[bottom], 255)

	for row := 1; row < 7; row++ {
		test.Equate(t, sd.luma[(1*8+row)*Columns+7], 0)
	}
}
