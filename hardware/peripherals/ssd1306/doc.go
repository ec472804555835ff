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

// Package ssd1306 simulates the 128x64 OLED display controller found on the
// Arduboy. The firmware drives it over the SPI bus, with chip-select,
// data/instruction and reset signals on MCU output pins.
//
// The package maintains two images. The VRAM is the bit-packed framebuffer
// exactly as written by the firmware: 8 pages of 128 byte-columns, each byte
// covering 8 vertically stacked pixels. The luminance buffer is what a real
// panel would show: OLED pixels do not switch instantly, so a lit bit charges
// its pixel's luminance over successive updates and a cleared bit lets it
// fade. UpdateLuma() performs one step of that persistence filter and is
// clocked by the cycle scheduler at the panel's own refresh cadence,
// independently of how often the host renders.
//
// The render path reads the luminance buffer without synchronisation. In the
// dual-thread execution model this is a deliberately relaxed-consistency
// read: a torn frame is imperceptible and is corrected by the next render.
package ssd1306
