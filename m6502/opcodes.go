package m6502

// The dispatch table maps each opcode byte to a wrapper that resolves the
// addressing mode, advances PC past the whole instruction, charges the base
// cycle cost and only then runs the instruction body. Branch offsets are
// therefore always relative to the post-operand PC, and instruction bodies
// receive either a raw value or an effective address, never both.

// pagecrossed reports whether a and b lie on different 256-byte pages.
func pagecrossed(a, b uint16) bool {
	return 0xFF00&a != 0xFF00&b
}

// read 16 bits from the zero page, wrapping at the page boundary.
func (cpu *CPU) zpr16(addr uint8) uint16 {
	lo := cpu.Read8(uint16(addr))
	hi := cpu.Read8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

/* effective address computation, operand bytes start at PC+1 */

func (cpu *CPU) zp() uint16  { return uint16(cpu.Read8(cpu.PC + 1)) }
func (cpu *CPU) zpx() uint16 { return uint16(cpu.Read8(cpu.PC+1) + cpu.X) }
func (cpu *CPU) zpy() uint16 { return uint16(cpu.Read8(cpu.PC+1) + cpu.Y) }
func (cpu *CPU) abs() uint16 { return cpu.Read16(cpu.PC + 1) }

func (cpu *CPU) abx() (uint16, bool) {
	base := cpu.abs()
	dst := base + uint16(cpu.X)
	return dst, pagecrossed(base, dst)
}

func (cpu *CPU) aby() (uint16, bool) {
	base := cpu.abs()
	dst := base + uint16(cpu.Y)
	return dst, pagecrossed(base, dst)
}

// zeropage indexed indirect (zp,x).
func (cpu *CPU) izx() uint16 {
	return cpu.zpr16(cpu.Read8(cpu.PC+1) + cpu.X)
}

// zeropage indirect indexed (zp),y.
func (cpu *CPU) izy() (uint16, bool) {
	base := cpu.zpr16(cpu.Read8(cpu.PC + 1))
	dst := base + uint16(cpu.Y)
	return dst, pagecrossed(base, dst)
}

// indirect, JMP-only. The pointer high byte read wraps within the page: a
// pointer at $xxFF reads its high byte from $xx00.
func (cpu *CPU) ind() uint16 {
	ptr := cpu.Read16(cpu.PC + 1)
	lo := cpu.Read8(ptr)
	hi := cpu.Read8(0xff00&ptr | 0x00ff&(ptr+1))
	return uint16(hi)<<8 | uint16(lo)
}

/* value-form wrappers */

func imm(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.PC + 1)
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func zpv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.zp())
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func zpxv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.zpx())
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func zpyv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.zpy())
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func absv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.abs())
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, v)
	}
}

// indexed reads pay one extra cycle when the index pushes the effective
// address onto another page.

func abxv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		addr, crossed := cpu.abx()
		if crossed {
			cpu.Clock++
		}
		v := cpu.Read8(addr)
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func abyv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		addr, crossed := cpu.aby()
		if crossed {
			cpu.Clock++
		}
		v := cpu.Read8(addr)
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func izxv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		v := cpu.Read8(cpu.izx())
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

func izyv(cycles int64, f func(*CPU, uint8)) func(*CPU) {
	return func(cpu *CPU) {
		addr, crossed := cpu.izy()
		if crossed {
			cpu.Clock++
		}
		v := cpu.Read8(addr)
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, v)
	}
}

/* address-form wrappers: stores and read-modify-write have fixed costs */

func zpa(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.zp()
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func zpxa(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.zpx()
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func zpya(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.zpy()
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func absa(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.abs()
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func abxa(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr, _ := cpu.abx()
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func abya(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr, _ := cpu.aby()
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func izxa(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.izx()
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func izya(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr, _ := cpu.izy()
		cpu.PC += 2
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

func inda(cycles int64, f func(*CPU, uint16)) func(*CPU) {
	return func(cpu *CPU) {
		addr := cpu.ind()
		cpu.PC += 3
		cpu.Clock += cycles
		f(cpu, addr)
	}
}

/* implied, accumulator and relative wrappers */

func imp(cycles int64, f func(*CPU)) func(*CPU) {
	return func(cpu *CPU) {
		cpu.PC += 1
		cpu.Clock += cycles
		f(cpu)
	}
}

// rel charges the 2-cycle base cost; branch() adds the taken/page-cross
// penalty. A branch not taken costs nothing beyond the base and leaves PC
// at the next instruction.
func rel(pred func(*CPU) bool) func(*CPU) {
	return func(cpu *CPU) {
		off := cpu.Read8(cpu.PC + 1)
		cpu.PC += 2
		cpu.Clock += 2
		if pred(cpu) {
			branch(cpu, off)
		}
	}
}

func ifClear(flag func(P) bool) func(*CPU) bool {
	return func(cpu *CPU) bool { return !flag(cpu.P) }
}

func ifSet(flag func(P) bool) func(*CPU) bool {
	return func(cpu *CPU) bool { return flag(cpu.P) }
}

// jamOp leaves PC on the jam opcode so the halt site stays visible.
func jamOp(cpu *CPU) {
	jam(cpu)
}

var ops = [256]func(*CPU){
	0x00: imp(7, brk),
	0x01: izxv(6, ora),
	0x02: jamOp,
	0x03: izxa(8, slo),
	0x04: zpv(3, dop),
	0x05: zpv(3, ora),
	0x06: zpa(5, aslm),
	0x07: zpa(5, slo),
	0x08: imp(3, php),
	0x09: imm(2, ora),
	0x0A: imp(2, asla),
	0x0B: imm(2, anc),
	0x0C: absv(4, top),
	0x0D: absv(4, ora),
	0x0E: absa(6, aslm),
	0x0F: absa(6, slo),
	0x10: rel(ifClear(P.N)), // BPL
	0x11: izyv(5, ora),
	0x12: jamOp,
	0x13: izya(8, slo),
	0x14: zpxv(4, dop),
	0x15: zpxv(4, ora),
	0x16: zpxa(6, aslm),
	0x17: zpxa(6, slo),
	0x18: imp(2, clc),
	0x19: abyv(4, ora),
	0x1A: imp(2, nop),
	0x1B: abya(7, slo),
	0x1C: abxv(4, top),
	0x1D: abxv(4, ora),
	0x1E: abxa(7, aslm),
	0x1F: abxa(7, slo),
	0x20: absa(6, jsr),
	0x21: izxv(6, and),
	0x22: jamOp,
	0x23: izxa(8, rla),
	0x24: zpv(3, bit),
	0x25: zpv(3, and),
	0x26: zpa(5, rolm),
	0x27: zpa(5, rla),
	0x28: imp(4, plp),
	0x29: imm(2, and),
	0x2A: imp(2, rola),
	0x2B: imm(2, anc),
	0x2C: absv(4, bit),
	0x2D: absv(4, and),
	0x2E: absa(6, rolm),
	0x2F: absa(6, rla),
	0x30: rel(ifSet(P.N)), // BMI
	0x31: izyv(5, and),
	0x32: jamOp,
	0x33: izya(8, rla),
	0x34: zpxv(4, dop),
	0x35: zpxv(4, and),
	0x36: zpxa(6, rolm),
	0x37: zpxa(6, rla),
	0x38: imp(2, sec),
	0x39: abyv(4, and),
	0x3A: imp(2, nop),
	0x3B: abya(7, rla),
	0x3C: abxv(4, top),
	0x3D: abxv(4, and),
	0x3E: abxa(7, rolm),
	0x3F: abxa(7, rla),
	0x40: imp(6, rti),
	0x41: izxv(6, eor),
	0x42: jamOp,
	0x43: izxa(8, sre),
	0x44: zpv(3, dop),
	0x45: zpv(3, eor),
	0x46: zpa(5, lsrm),
	0x47: zpa(5, sre),
	0x48: imp(3, pha),
	0x49: imm(2, eor),
	0x4A: imp(2, lsra),
	0x4B: imm(2, alr),
	0x4C: absa(3, jmp),
	0x4D: absv(4, eor),
	0x4E: absa(6, lsrm),
	0x4F: absa(6, sre),
	0x50: rel(ifClear(P.V)), // BVC
	0x51: izyv(5, eor),
	0x52: jamOp,
	0x53: izya(8, sre),
	0x54: zpxv(4, dop),
	0x55: zpxv(4, eor),
	0x56: zpxa(6, lsrm),
	0x57: zpxa(6, sre),
	0x58: imp(2, cli),
	0x59: abyv(4, eor),
	0x5A: imp(2, nop),
	0x5B: abya(7, sre),
	0x5C: abxv(4, top),
	0x5D: abxv(4, eor),
	0x5E: abxa(7, lsrm),
	0x5F: abxa(7, sre),
	0x60: imp(6, rts),
	0x61: izxv(6, adc),
	0x62: jamOp,
	0x63: izxa(8, rra),
	0x64: zpv(3, dop),
	0x65: zpv(3, adc),
	0x66: zpa(5, rorm),
	0x67: zpa(5, rra),
	0x68: imp(4, pla),
	0x69: imm(2, adc),
	0x6A: imp(2, rora),
	0x6B: imm(2, arr),
	0x6C: inda(5, jmp),
	0x6D: absv(4, adc),
	0x6E: absa(6, rorm),
	0x6F: absa(6, rra),
	0x70: rel(ifSet(P.V)), // BVS
	0x71: izyv(5, adc),
	0x72: jamOp,
	0x73: izya(8, rra),
	0x74: zpxv(4, dop),
	0x75: zpxv(4, adc),
	0x76: zpxa(6, rorm),
	0x77: zpxa(6, rra),
	0x78: imp(2, sei),
	0x79: abyv(4, adc),
	0x7A: imp(2, nop),
	0x7B: abya(7, rra),
	0x7C: abxv(4, top),
	0x7D: abxv(4, adc),
	0x7E: abxa(7, rorm),
	0x7F: abxa(7, rra),
	0x80: imm(2, dop),
	0x81: izxa(6, sta),
	0x82: imm(2, dop),
	0x83: izxa(6, sax),
	0x84: zpa(3, sty),
	0x85: zpa(3, sta),
	0x86: zpa(3, stx),
	0x87: zpa(3, sax),
	0x88: imp(2, dey),
	0x89: imm(2, dop),
	0x8A: imp(2, txa),
	0x8B: jamOp, // ANE, unstable
	0x8C: absa(4, sty),
	0x8D: absa(4, sta),
	0x8E: absa(4, stx),
	0x8F: absa(4, sax),
	0x90: rel(ifClear(P.C)), // BCC
	0x91: izya(6, sta),
	0x92: jamOp,
	0x93: jamOp, // SHA (zp),y, unstable
	0x94: zpxa(4, sty),
	0x95: zpxa(4, sta),
	0x96: zpya(4, stx),
	0x97: zpya(4, sax),
	0x98: imp(2, tya),
	0x99: abya(5, sta),
	0x9A: imp(2, txs),
	0x9B: jamOp, // TAS, unstable
	0x9C: absa(5, shy),
	0x9D: abxa(5, sta),
	0x9E: absa(5, shx),
	0x9F: jamOp, // SHA abs,y, unstable
	0xA0: imm(2, ldy),
	0xA1: izxv(6, lda),
	0xA2: imm(2, ldx),
	0xA3: izxv(6, lax),
	0xA4: zpv(3, ldy),
	0xA5: zpv(3, lda),
	0xA6: zpv(3, ldx),
	0xA7: zpv(3, lax),
	0xA8: imp(2, tay),
	0xA9: imm(2, lda),
	0xAA: imp(2, tax),
	0xAB: jamOp, // LXA, unstable
	0xAC: absv(4, ldy),
	0xAD: absv(4, lda),
	0xAE: absv(4, ldx),
	0xAF: absv(4, lax),
	0xB0: rel(ifSet(P.C)), // BCS
	0xB1: izyv(5, lda),
	0xB2: jamOp,
	0xB3: izyv(5, lax),
	0xB4: zpxv(4, ldy),
	0xB5: zpxv(4, lda),
	0xB6: zpyv(4, ldx),
	0xB7: zpyv(4, lax),
	0xB8: imp(2, clv),
	0xB9: abyv(4, lda),
	0xBA: imp(2, tsx),
	0xBB: abyv(4, las),
	0xBC: abxv(4, ldy),
	0xBD: abxv(4, lda),
	0xBE: abyv(4, ldx),
	0xBF: abyv(4, lax),
	0xC0: imm(2, cpy),
	0xC1: izxv(6, cmp_),
	0xC2: imm(2, dop),
	0xC3: izxa(8, dcp),
	0xC4: zpv(3, cpy),
	0xC5: zpv(3, cmp_),
	0xC6: zpa(5, decm),
	0xC7: zpa(5, dcp),
	0xC8: imp(2, iny),
	0xC9: imm(2, cmp_),
	0xCA: imp(2, dex),
	0xCB: imm(2, sbx),
	0xCC: absv(4, cpy),
	0xCD: absv(4, cmp_),
	0xCE: absa(6, decm),
	0xCF: absa(6, dcp),
	0xD0: rel(ifClear(P.Z)), // BNE
	0xD1: izyv(5, cmp_),
	0xD2: jamOp,
	0xD3: izya(8, dcp),
	0xD4: zpxv(4, dop),
	0xD5: zpxv(4, cmp_),
	0xD6: zpxa(6, decm),
	0xD7: zpxa(6, dcp),
	0xD8: imp(2, cld),
	0xD9: abyv(4, cmp_),
	0xDA: imp(2, nop),
	0xDB: abya(7, dcp),
	0xDC: abxv(4, top),
	0xDD: abxv(4, cmp_),
	0xDE: abxa(7, decm),
	0xDF: abxa(7, dcp),
	0xE0: imm(2, cpx),
	0xE1: izxv(6, sbc),
	0xE2: imm(2, dop),
	0xE3: izxa(8, isc),
	0xE4: zpv(3, cpx),
	0xE5: zpv(3, sbc),
	0xE6: zpa(5, incm),
	0xE7: zpa(5, isc),
	0xE8: imp(2, inx),
	0xE9: imm(2, sbc),
	0xEA: imp(2, nop),
	0xEB: imm(2, sbc),
	0xEC: absv(4, cpx),
	0xED: absv(4, sbc),
	0xEE: absa(6, incm),
	0xEF: absa(6, isc),
	0xF0: rel(ifSet(P.Z)), // BEQ
	0xF1: izyv(5, sbc),
	0xF2: jamOp,
	0xF3: izya(8, isc),
	0xF4: zpxv(4, dop),
	0xF5: zpxv(4, sbc),
	0xF6: zpxa(6, incm),
	0xF7: zpxa(6, isc),
	0xF8: imp(2, sed),
	0xF9: abyv(4, sbc),
	0xFA: imp(2, nop),
	0xFB: abya(7, isc),
	0xFC: abxv(4, top),
	0xFD: abxv(4, sbc),
	0xFE: abxa(7, incm),
	0xFF: abxa(7, isc),
}
