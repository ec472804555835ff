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

package mcu

import (
	"github.com/jetsetilly/ardugo/hardware/govern"
)

// pointer register pairs.
const (
	regX = 26
	regY = 28
	regZ = 30
)

func (core *avr) fetchWord() uint16 {
	w := core.flash[core.pc&(flashSize/2-1)]
	core.pc++
	return w
}

// two-word instructions are LDS, STS, JMP and CALL.
func isTwoWord(op uint16) bool {
	return op&0xfe0f == 0x9000 || op&0xfe0f == 0x9200 ||
		op&0xfe0e == 0x940c || op&0xfe0e == 0x940e
}

// skip the next instruction. used by CPSE, SBIC, SBIS, SBRC and SBRS.
func (core *avr) skip() {
	if isTwoWord(core.flash[core.pc&(flashSize/2-1)]) {
		core.pc += 2
		core.cycle += 2
	} else {
		core.pc++
		core.cycle++
	}
}

func (core *avr) wreg(r int) uint16 {
	return uint16(core.data[r]) | (uint16(core.data[r+1]) << 8)
}

func (core *avr) setWreg(r int, v uint16) {
	core.data[r] = uint8(v & 0xff)
	core.data[r+1] = uint8(v >> 8)
}

func (core *avr) carry() uint8 {
	if core.sreg(flagC) {
		return 1
	}
	return 0
}

func (core *avr) flagsAdd(d, r, res uint8) {
	core.setSREG(flagH, (d&r|r&^res|^res&d)&0x08 != 0)
	core.setSREG(flagC, (d&r|r&^res|^res&d)&0x80 != 0)
	core.setSREG(flagV, (d&r&^res|^d&^r&res)&0x80 != 0)
	core.setSREG(flagN, res&0x80 != 0)
	core.setSREG(flagZ, res == 0)
	core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
}

// stickyZ selects the SBC/CPC behaviour where a zero result leaves the Z
// flag as it was, allowing 16bit compares to fall out naturally.
func (core *avr) flagsSub(d, r, res uint8, stickyZ bool) {
	core.setSREG(flagH, (^d&r|r&res|res&^d)&0x08 != 0)
	core.setSREG(flagC, (^d&r|r&res|res&^d)&0x80 != 0)
	core.setSREG(flagV, (d&^r&^res|^d&r&res)&0x80 != 0)
	core.setSREG(flagN, res&0x80 != 0)
	if stickyZ {
		core.setSREG(flagZ, res == 0 && core.sreg(flagZ))
	} else {
		core.setSREG(flagZ, res == 0)
	}
	core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
}

func (core *avr) flagsLogic(res uint8) {
	core.setSREG(flagV, false)
	core.setSREG(flagN, res&0x80 != 0)
	core.setSREG(flagZ, res == 0)
	core.setSREG(flagS, core.sreg(flagN))
}

// Z, N and S for the shift and increment/decrement group, which set V by
// their own rules.
func (core *avr) flagsZNS(res uint8) {
	core.setSREG(flagN, res&0x80 != 0)
	core.setSREG(flagZ, res == 0)
	core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
}

// execute dispatches and performs a single decoded instruction, adding its
// cost to the cycle counter. Returns false for an opcode the core does not
// implement.
func (core *avr) execute(op uint16) bool {
	// two-register operands
	d2 := (op >> 4) & 0x1f
	r2 := (op & 0x0f) | ((op >> 5) & 0x10)

	// register-immediate operands
	di := 16 + ((op >> 4) & 0x0f)
	k8 := uint8(op&0x0f) | uint8((op>>4)&0xf0)

	switch op & 0xf000 {
	case 0x0000:
		switch {
		case op == 0x0000: // NOP
			core.cycle++
		case op&0xff00 == 0x0100: // MOVW
			d := ((op >> 4) & 0x0f) * 2
			r := (op & 0x0f) * 2
			core.data[d] = core.data[r]
			core.data[d+1] = core.data[r+1]
			core.cycle++
		case op&0xfc00 == 0x0400: // CPC
			d := core.data[d2]
			r := core.data[r2]
			res := d - r - core.carry()
			core.flagsSub(d, r, res, true)
			core.cycle++
		case op&0xfc00 == 0x0800: // SBC
			d := core.data[d2]
			r := core.data[r2]
			res := d - r - core.carry()
			core.data[d2] = res
			core.flagsSub(d, r, res, true)
			core.cycle++
		case op&0xfc00 == 0x0c00: // ADD
			d := core.data[d2]
			r := core.data[r2]
			res := d + r
			core.data[d2] = res
			core.flagsAdd(d, r, res)
			core.cycle++
		default:
			return false
		}

	case 0x1000:
		switch op & 0xfc00 {
		case 0x1000: // CPSE
			core.cycle++
			if core.data[d2] == core.data[r2] {
				core.skip()
			}
		case 0x1400: // CP
			d := core.data[d2]
			r := core.data[r2]
			core.flagsSub(d, r, d-r, false)
			core.cycle++
		case 0x1800: // SUB
			d := core.data[d2]
			r := core.data[r2]
			res := d - r
			core.data[d2] = res
			core.flagsSub(d, r, res, false)
			core.cycle++
		case 0x1c00: // ADC
			d := core.data[d2]
			r := core.data[r2]
			res := d + r + core.carry()
			core.data[d2] = res
			core.flagsAdd(d, r, res)
			core.cycle++
		}

	case 0x2000:
		switch op & 0xfc00 {
		case 0x2000: // AND
			res := core.data[d2] & core.data[r2]
			core.data[d2] = res
			core.flagsLogic(res)
		case 0x2400: // EOR
			res := core.data[d2] ^ core.data[r2]
			core.data[d2] = res
			core.flagsLogic(res)
		case 0x2800: // OR
			res := core.data[d2] | core.data[r2]
			core.data[d2] = res
			core.flagsLogic(res)
		case 0x2c00: // MOV
			core.data[d2] = core.data[r2]
		}
		core.cycle++

	case 0x3000: // CPI
		d := core.data[di]
		core.flagsSub(d, k8, d-k8, false)
		core.cycle++

	case 0x4000: // SBCI
		d := core.data[di]
		res := d - k8 - core.carry()
		core.data[di] = res
		core.flagsSub(d, k8, res, true)
		core.cycle++

	case 0x5000: // SUBI
		d := core.data[di]
		res := d - k8
		core.data[di] = res
		core.flagsSub(d, k8, res, false)
		core.cycle++

	case 0x6000: // ORI
		res := core.data[di] | k8
		core.data[di] = res
		core.flagsLogic(res)
		core.cycle++

	case 0x7000: // ANDI
		res := core.data[di] & k8
		core.data[di] = res
		core.flagsLogic(res)
		core.cycle++

	case 0x8000, 0xa000: // LDD/STD with displacement from Y or Z
		q := uint16(op&0x07) | ((op >> 7) & 0x18) | ((op >> 8) & 0x20)
		base := regZ
		if op&0x0008 != 0 {
			base = regY
		}
		addr := core.wreg(base) + q
		if op&0x0200 == 0 {
			core.data[d2] = core.readData(addr)
		} else {
			core.writeData(addr, core.data[d2])
		}
		core.cycle += 2

	case 0x9000:
		return core.execute9000(op, d2)

	case 0xb000: // IN/OUT
		a := (op & 0x0f) | ((op >> 5) & 0x30)
		if op&0x0800 == 0 {
			core.data[d2] = core.readData(a + 0x20)
		} else {
			core.writeData(a+0x20, core.data[d2])
		}
		core.cycle++

	case 0xc000: // RJMP
		k := int32(op&0x0fff) << 20 >> 20
		if k == -1 && !core.sreg(flagI) {
			// a jump-to-self with interrupts disabled can never make
			// progress. firmware ends this way
			core.state = govern.Halted
		}
		core.pc = uint32(int32(core.pc) + k)
		core.cycle += 2

	case 0xd000: // RCALL
		k := int32(op&0x0fff) << 20 >> 20
		core.pushPC()
		core.pc = uint32(int32(core.pc) + k)
		core.cycle += 3

	case 0xe000: // LDI
		core.data[di] = k8
		core.cycle++

	case 0xf000:
		switch {
		case op&0xfc00 == 0xf000: // BRBS
			k := int32(op&0x03f8) << 22 >> 25
			if core.sreg(int(op & 0x07)) {
				core.pc = uint32(int32(core.pc) + k)
				core.cycle++
			}
			core.cycle++
		case op&0xfc00 == 0xf400: // BRBC
			k := int32(op&0x03f8) << 22 >> 25
			if !core.sreg(int(op & 0x07)) {
				core.pc = uint32(int32(core.pc) + k)
				core.cycle++
			}
			core.cycle++
		case op&0xfe08 == 0xf800: // BLD
			b := op & 0x07
			if core.sreg(flagT) {
				core.data[d2] |= 1 << b
			} else {
				core.data[d2] &^= 1 << b
			}
			core.cycle++
		case op&0xfe08 == 0xfa00: // BST
			core.setSREG(flagT, core.data[d2]&(1<<(op&0x07)) != 0)
			core.cycle++
		case op&0xfe08 == 0xfc00: // SBRC
			core.cycle++
			if core.data[d2]&(1<<(op&0x07)) == 0 {
				core.skip()
			}
		case op&0xfe08 == 0xfe00: // SBRS
			core.cycle++
			if core.data[d2]&(1<<(op&0x07)) != 0 {
				core.skip()
			}
		default:
			return false
		}

	default:
		return false
	}

	return true
}

// the 0x9000 group: loads, stores, stack, one-operand ALU, flow control and
// the IO bit instructions.
func (core *avr) execute9000(op uint16, d2 uint16) bool {
	switch op & 0xfe0f {
	case 0x9000: // LDS
		core.data[d2] = core.readData(core.fetchWord())
		core.cycle += 2
		return true
	case 0x9001: // LD Rd, Z+
		core.loadIndirect(d2, regZ, 1)
		return true
	case 0x9002: // LD Rd, -Z
		core.loadIndirect(d2, regZ, -1)
		return true
	case 0x9004: // LPM Rd, Z
		core.lpm(d2, false)
		return true
	case 0x9005: // LPM Rd, Z+
		core.lpm(d2, true)
		return true
	case 0x9009: // LD Rd, Y+
		core.loadIndirect(d2, regY, 1)
		return true
	case 0x900a: // LD Rd, -Y
		core.loadIndirect(d2, regY, -1)
		return true
	case 0x900c: // LD Rd, X
		core.loadIndirect(d2, regX, 0)
		return true
	case 0x900d: // LD Rd, X+
		core.loadIndirect(d2, regX, 1)
		return true
	case 0x900e: // LD Rd, -X
		core.loadIndirect(d2, regX, -1)
		return true
	case 0x900f: // POP
		core.data[d2] = core.pop()
		core.cycle += 2
		return true
	case 0x9200: // STS
		core.writeData(core.fetchWord(), core.data[d2])
		core.cycle += 2
		return true
	case 0x9201: // ST Z+, Rr
		core.storeIndirect(d2, regZ, 1)
		return true
	case 0x9202: // ST -Z, Rr
		core.storeIndirect(d2, regZ, -1)
		return true
	case 0x9209: // ST Y+, Rr
		core.storeIndirect(d2, regY, 1)
		return true
	case 0x920a: // ST -Y, Rr
		core.storeIndirect(d2, regY, -1)
		return true
	case 0x920c: // ST X, Rr
		core.storeIndirect(d2, regX, 0)
		return true
	case 0x920d: // ST X+, Rr
		core.storeIndirect(d2, regX, 1)
		return true
	case 0x920e: // ST -X, Rr
		core.storeIndirect(d2, regX, -1)
		return true
	case 0x920f: // PUSH
		core.push(core.data[d2])
		core.cycle += 2
		return true
	}

	if op&0xfe00 == 0x9400 {
		if core.oneOperand(op, d2) {
			return true
		}
	}

	switch op & 0xfe0e {
	case 0x940c: // JMP
		k := uint32(core.fetchWord()) | ((uint32(op)&0x01 | (uint32(op)>>3)&0x3e) << 16)
		core.pc = k
		core.cycle += 3
		return true
	case 0x940e: // CALL
		k := uint32(core.fetchWord()) | ((uint32(op)&0x01 | (uint32(op)>>3)&0x3e) << 16)
		core.pushPC()
		core.pc = k
		core.cycle += 4
		return true
	}

	switch op & 0xff00 {
	case 0x9600, 0x9700: // ADIW/SBIW
		d := 24 + 2*int((op>>4)&0x03)
		k := uint16(op&0x0f) | ((op >> 2) & 0x30)
		v := core.wreg(d)
		var res uint16
		if op&0x0100 == 0 {
			res = v + k
			core.setSREG(flagV, (^v&res)&0x8000 != 0)
			core.setSREG(flagC, (^res&v)&0x8000 != 0)
		} else {
			res = v - k
			core.setSREG(flagV, (v&^res)&0x8000 != 0)
			core.setSREG(flagC, (res&^v)&0x8000 != 0)
		}
		core.setWreg(d, res)
		core.setSREG(flagN, res&0x8000 != 0)
		core.setSREG(flagZ, res == 0)
		core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
		core.cycle += 2
		return true

	case 0x9800: // CBI
		addr := ((op >> 3) & 0x1f) + 0x20
		core.writeData(addr, core.readData(addr)&^(1<<(op&0x07)))
		core.cycle += 2
		return true
	case 0x9a00: // SBI
		addr := ((op >> 3) & 0x1f) + 0x20
		core.writeData(addr, core.readData(addr)|(1<<(op&0x07)))
		core.cycle += 2
		return true
	case 0x9900: // SBIC
		core.cycle++
		if core.readData(((op>>3)&0x1f)+0x20)&(1<<(op&0x07)) == 0 {
			core.skip()
		}
		return true
	case 0x9b00: // SBIS
		core.cycle++
		if core.readData(((op>>3)&0x1f)+0x20)&(1<<(op&0x07)) != 0 {
			core.skip()
		}
		return true
	}

	switch op {
	case 0x9409: // IJMP
		core.pc = uint32(core.wreg(regZ))
		core.cycle += 2
		return true
	case 0x9508: // RET
		core.pc = core.popPC()
		core.cycle += 4
		return true
	case 0x9509: // ICALL
		core.pushPC()
		core.pc = uint32(core.wreg(regZ))
		core.cycle += 3
		return true
	case 0x9518: // RETI
		core.pc = core.popPC()
		core.setSREG(flagI, true)
		core.cycle += 4
		return true
	case 0x9588: // SLEEP
		core.sleeping = true
		core.cycle++
		return true
	case 0x9598: // BREAK
		core.state = govern.Halted
		core.cycle++
		return true
	case 0x95a8: // WDR
		core.cycle++
		return true
	}

	if op&0xff8f == 0x9408 { // BSET/BCLR
		core.setSREG(int((op>>4)&0x07), op&0x0080 == 0)
		core.cycle++
		return true
	}

	return false
}

// the one-operand ALU group. returns false for the encodings in this space
// that are not single-operand instructions.
func (core *avr) oneOperand(op uint16, d2 uint16) bool {
	d := core.data[d2]

	switch op & 0x000f {
	case 0x0: // COM
		res := ^d
		core.data[d2] = res
		core.setSREG(flagC, true)
		core.flagsLogic(res)
	case 0x1: // NEG
		res := -d
		core.data[d2] = res
		core.setSREG(flagH, (res|d)&0x08 != 0)
		core.setSREG(flagC, res != 0)
		core.setSREG(flagV, res == 0x80)
		core.flagsZNS(res)
	case 0x2: // SWAP
		core.data[d2] = (d << 4) | (d >> 4)
	case 0x3: // INC
		res := d + 1
		core.data[d2] = res
		core.setSREG(flagV, res == 0x80)
		core.flagsZNS(res)
	case 0x5: // ASR
		res := (d >> 1) | (d & 0x80)
		core.data[d2] = res
		core.setSREG(flagC, d&0x01 != 0)
		core.setSREG(flagN, res&0x80 != 0)
		core.setSREG(flagV, core.sreg(flagN) != core.sreg(flagC))
		core.setSREG(flagZ, res == 0)
		core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
	case 0x6: // LSR
		res := d >> 1
		core.data[d2] = res
		core.setSREG(flagC, d&0x01 != 0)
		core.setSREG(flagN, false)
		core.setSREG(flagV, core.sreg(flagC))
		core.setSREG(flagZ, res == 0)
		core.setSREG(flagS, core.sreg(flagV))
	case 0x7: // ROR
		res := (d >> 1) | (core.carry() << 7)
		core.data[d2] = res
		core.setSREG(flagC, d&0x01 != 0)
		core.setSREG(flagN, res&0x80 != 0)
		core.setSREG(flagV, core.sreg(flagN) != core.sreg(flagC))
		core.setSREG(flagZ, res == 0)
		core.setSREG(flagS, core.sreg(flagN) != core.sreg(flagV))
	case 0xa: // DEC
		res := d - 1
		core.data[d2] = res
		core.setSREG(flagV, d == 0x80)
		core.flagsZNS(res)
	default:
		return false
	}

	core.cycle++
	return true
}

// indirect load through a pointer register pair. adjust of 1 post-increments
// the pointer, -1 pre-decrements it.
func (core *avr) loadIndirect(d2 uint16, base int, adjust int) {
	ptr := core.wreg(base)
	if adjust < 0 {
		ptr--
		core.setWreg(base, ptr)
	}
	core.data[d2] = core.readData(ptr)
	if adjust > 0 {
		core.setWreg(base, ptr+1)
	}
	core.cycle += 2
}

func (core *avr) storeIndirect(d2 uint16, base int, adjust int) {
	ptr := core.wreg(base)
	if adjust < 0 {
		ptr--
		core.setWreg(base, ptr)
	}
	core.writeData(ptr, core.data[d2])
	if adjust > 0 {
		core.setWreg(base, ptr+1)
	}
	core.cycle += 2
}

// load from program memory. the Z pointer is a byte address into flash.
func (core *avr) lpm(d2 uint16, postinc bool) {
	ptr := core.wreg(regZ)
	w := core.flash[(ptr>>1)&(flashSize/2-1)]
	if ptr&1 == 0 {
		core.data[d2] = uint8(w & 0xff)
	} else {
		core.data[d2] = uint8(w >> 8)
	}
	if postinc {
		core.setWreg(regZ, ptr+1)
	}
	core.cycle += 3
}
