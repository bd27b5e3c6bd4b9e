package m6502

// Instruction bodies. The dispatch table in opcodes.go resolves the
// addressing mode and routes either the operand value (value-form
// instructions) or the effective address (memory-form instructions); by the
// time a body runs, PC has already been advanced past the whole instruction.

/* arithmetic and logic */

// add memory to accumulator with carry.
func adc(cpu *CPU, val uint8) {
	carry := cpu.P.ibit(pbitC)
	sum := uint16(cpu.A) + uint16(val) + uint16(carry)

	cpu.P.checkCV(cpu.A, val, sum)
	cpu.A = uint8(sum)
	cpu.P.checkNZ(cpu.A)
}

// subtract memory from accumulator with borrow. A - v - (1-C) is the same
// 9-bit sum as A + ^v + C, carry and overflow included.
func sbc(cpu *CPU, val uint8) {
	adc(cpu, ^val)
}

// and memory with accumulator.
func and(cpu *CPU, val uint8) {
	cpu.A &= val
	cpu.P.checkNZ(cpu.A)
}

// or memory with accumulator.
func ora(cpu *CPU, val uint8) {
	cpu.A |= val
	cpu.P.checkNZ(cpu.A)
}

// exclusive-or memory with accumulator.
func eor(cpu *CPU, val uint8) {
	cpu.A ^= val
	cpu.P.checkNZ(cpu.A)
}

// asl shifts v one bit left. The carry receives the bit shifted out, Z/N
// follow the result.
func asl(cpu *CPU, v uint8) uint8 {
	cpu.P.writeBit(pbitC, v&0x80 != 0)
	v <<= 1
	cpu.P.checkNZ(v)
	return v
}

// lsr shifts v one bit right, bit 0 lands in the carry.
func lsr(cpu *CPU, v uint8) uint8 {
	cpu.P.writeBit(pbitC, v&0x01 != 0)
	v >>= 1
	cpu.P.checkNZ(v)
	return v
}

// rol rotates v one bit left through the carry: the previous carry fills
// bit 0, bit 7 becomes the next carry.
func rol(cpu *CPU, v uint8) uint8 {
	carry := v & 0x80
	v <<= 1
	if cpu.P.C() {
		v |= 1 << 0
	}
	cpu.P.checkNZ(v)
	cpu.P.writeBit(pbitC, carry != 0)
	return v
}

// ror rotates v one bit right through the carry.
func ror(cpu *CPU, v uint8) uint8 {
	carry := v & 0x01
	v >>= 1
	if cpu.P.C() {
		v |= 1 << 7
	}
	cpu.P.checkNZ(v)
	cpu.P.writeBit(pbitC, carry != 0)
	return v
}

// accumulator forms.

func asla(cpu *CPU) { cpu.A = asl(cpu, cpu.A) }
func lsra(cpu *CPU) { cpu.A = lsr(cpu, cpu.A) }
func rola(cpu *CPU) { cpu.A = rol(cpu, cpu.A) }
func rora(cpu *CPU) { cpu.A = ror(cpu, cpu.A) }

// memory forms: read, compute, write back. The accumulator is not touched.

func aslm(cpu *CPU, addr uint16) { cpu.Write8(addr, asl(cpu, cpu.Read8(addr))) }
func lsrm(cpu *CPU, addr uint16) { cpu.Write8(addr, lsr(cpu, cpu.Read8(addr))) }
func rolm(cpu *CPU, addr uint16) { cpu.Write8(addr, rol(cpu, cpu.Read8(addr))) }
func rorm(cpu *CPU, addr uint16) { cpu.Write8(addr, ror(cpu, cpu.Read8(addr))) }

// compare memory with accumulator. Carry means no borrow: a >= b unsigned.
func cmp_(cpu *CPU, val uint8) {
	cpu.P.checkNZ(cpu.A - val)
	cpu.P.writeBit(pbitC, val <= cpu.A)
}

// compare memory and index x.
func cpx(cpu *CPU, val uint8) {
	cpu.P.checkNZ(cpu.X - val)
	cpu.P.writeBit(pbitC, val <= cpu.X)
}

// compare memory and index y.
func cpy(cpu *CPU, val uint8) {
	cpu.P.checkNZ(cpu.Y - val)
	cpu.P.writeBit(pbitC, val <= cpu.Y)
}

// test bits in memory with accumulator. N and V come straight from bits 7
// and 6 of the operand, not from the AND result.
func bit(cpu *CPU, val uint8) {
	cpu.P &= 0b00111111
	cpu.P |= P(val & 0b11000000)
	cpu.P.checkZ(cpu.A & val)
}

// increment memory by one.
func incm(cpu *CPU, addr uint16) {
	v := cpu.Read8(addr) + 1
	cpu.Write8(addr, v)
	cpu.P.checkNZ(v)
}

// decrement memory by one.
func decm(cpu *CPU, addr uint16) {
	v := cpu.Read8(addr) - 1
	cpu.Write8(addr, v)
	cpu.P.checkNZ(v)
}

func inx(cpu *CPU) { cpu.X++; cpu.P.checkNZ(cpu.X) }
func iny(cpu *CPU) { cpu.Y++; cpu.P.checkNZ(cpu.Y) }
func dex(cpu *CPU) { cpu.X--; cpu.P.checkNZ(cpu.X) }
func dey(cpu *CPU) { cpu.Y--; cpu.P.checkNZ(cpu.Y) }

/* loads, stores, transfers */

func lda(cpu *CPU, val uint8) {
	cpu.A = val
	cpu.P.checkNZ(cpu.A)
}

func ldx(cpu *CPU, val uint8) {
	cpu.X = val
	cpu.P.checkNZ(cpu.X)
}

func ldy(cpu *CPU, val uint8) {
	cpu.Y = val
	cpu.P.checkNZ(cpu.Y)
}

func sta(cpu *CPU, addr uint16) { cpu.Write8(addr, cpu.A) }
func stx(cpu *CPU, addr uint16) { cpu.Write8(addr, cpu.X) }
func sty(cpu *CPU, addr uint16) { cpu.Write8(addr, cpu.Y) }

func tax(cpu *CPU) { cpu.X = cpu.A; cpu.P.checkNZ(cpu.X) }
func tay(cpu *CPU) { cpu.Y = cpu.A; cpu.P.checkNZ(cpu.Y) }
func tsx(cpu *CPU) { cpu.X = cpu.SP; cpu.P.checkNZ(cpu.X) }
func txa(cpu *CPU) { cpu.A = cpu.X; cpu.P.checkNZ(cpu.A) }
func tya(cpu *CPU) { cpu.A = cpu.Y; cpu.P.checkNZ(cpu.A) }

// txs is the only transfer that leaves the flags alone.
func txs(cpu *CPU) { cpu.SP = cpu.X }

/* control flow */

// branch applies the relative displacement to the already-advanced PC. Only
// called when the branch is taken: one extra cycle, two when the target
// lands on another page.
func branch(cpu *CPU, offset uint8) {
	target := cpu.PC + uint16(int16(int8(offset)))
	if pagecrossed(cpu.PC, target) {
		cpu.Clock += 2
	} else {
		cpu.Clock += 1
	}
	cpu.PC = target
}

func jmp(cpu *CPU, addr uint16) {
	cpu.PC = addr
}

// jsr pushes PC-1: RTS adds the 1 back.
func jsr(cpu *CPU, addr uint16) {
	cpu.push16(cpu.PC - 1)
	cpu.PC = addr
}

func rts(cpu *CPU) {
	cpu.PC = cpu.pull16() + 1
}

// brk pushes the PC following the opcode byte (the padding byte is not
// skipped), then P with the break flag set, and vectors through IRQVector.
func brk(cpu *CPU) {
	cpu.push16(cpu.PC)
	cpu.P.setBit(pbitB)
	cpu.push8(uint8(cpu.P))
	cpu.P.setBit(pbitI)
	cpu.PC = cpu.Read16(IRQVector)
}

func rti(cpu *CPU) {
	restoreP(cpu, cpu.pull8())
	cpu.PC = cpu.pull16()
}

/* stack */

func pha(cpu *CPU) {
	cpu.push8(cpu.A)
}

// php pushes P with the break and unused bits forced set; they only exist
// on the stack.
func php(cpu *CPU) {
	p := cpu.P
	p.setBit(pbitB)
	p.setBit(pbitU)
	cpu.push8(uint8(p))
}

func pla(cpu *CPU) {
	cpu.A = cpu.pull8()
	cpu.P.checkNZ(cpu.A)
}

func plp(cpu *CPU) {
	restoreP(cpu, cpu.pull8())
}

// restoreP writes a value pulled from the stack into P. The break bit is
// never restored and the unused bit always reads as 1.
func restoreP(cpu *CPU, v uint8) {
	p := P(v)
	p.clearBit(pbitB)
	p.setBit(pbitU)
	cpu.P = p
}

/* flag set/clear */

func clc(cpu *CPU) { cpu.P.clearBit(pbitC) }
func cli(cpu *CPU) { cpu.P.clearBit(pbitI) }
func cld(cpu *CPU) { cpu.P.clearBit(pbitD) }
func clv(cpu *CPU) { cpu.P.clearBit(pbitV) }
func sec(cpu *CPU) { cpu.P.setBit(pbitC) }
func sei(cpu *CPU) { cpu.P.setBit(pbitI) }
func sed(cpu *CPU) { cpu.P.setBit(pbitD) }

func nop(cpu *CPU) {}

/* undocumented instructions */

// The read-modify-write compositions below chain two documented
// instructions against the same effective address, re-reading memory in
// between so that read side effects happen exactly as they would had the
// two instructions run back to back.

// shift left then or: ASL + ORA.
func slo(cpu *CPU, addr uint16) {
	aslm(cpu, addr)
	ora(cpu, cpu.Read8(addr))
}

// shift right then xor: LSR + EOR.
func sre(cpu *CPU, addr uint16) {
	lsrm(cpu, addr)
	eor(cpu, cpu.Read8(addr))
}

// rotate left then and: ROL + AND.
func rla(cpu *CPU, addr uint16) {
	rolm(cpu, addr)
	and(cpu, cpu.Read8(addr))
}

// rotate right then add: ROR + ADC.
func rra(cpu *CPU, addr uint16) {
	rorm(cpu, addr)
	adc(cpu, cpu.Read8(addr))
}

// decrement then compare. The decrement itself leaves the flags alone, CMP
// sets them all.
func dcp(cpu *CPU, addr uint16) {
	cpu.Write8(addr, cpu.Read8(addr)-1)
	cmp_(cpu, cpu.Read8(addr))
}

// increment then subtract: INC + SBC.
func isc(cpu *CPU, addr uint16) {
	incm(cpu, addr)
	sbc(cpu, cpu.Read8(addr))
}

// load accumulator and index x with the same byte.
func lax(cpu *CPU, val uint8) {
	lda(cpu, val)
	ldx(cpu, val)
}

// store A & X; no flag effect.
func sax(cpu *CPU, addr uint16) {
	cpu.Write8(addr, cpu.A&cpu.X)
}

// dop and top consume one (dop) or two (top) operand bytes and do nothing
// with them; the operand fetch itself is the observable behavior.
func dop(cpu *CPU, val uint8) {}
func top(cpu *CPU, val uint8) {}

// and then copy N into C.
func anc(cpu *CPU, val uint8) {
	and(cpu, val)
	cpu.P.writeBit(pbitC, cpu.P.N())
}

// and then shift right.
func alr(cpu *CPU, val uint8) {
	and(cpu, val)
	lsra(cpu)
}

// and then rotate right, with C and V taken from bits 6 and 5 of the
// result.
func arr(cpu *CPU, val uint8) {
	cpu.A &= val
	cpu.A >>= 1
	if cpu.P.C() {
		cpu.A |= 1 << 7
	}
	cpu.P.checkNZ(cpu.A)
	cpu.P.writeBit(pbitC, cpu.A&(1<<6) != 0)
	cpu.P.writeBit(pbitV, ((cpu.A>>6)^(cpu.A>>5))&0x01 != 0)
}

// (A & X) - operand into X.
func sbx(cpu *CPU, val uint8) {
	v := (int16(cpu.A) & int16(cpu.X)) - int16(val)
	cpu.X = uint8(v)
	cpu.P.checkNZ(cpu.X)
	cpu.P.writeBit(pbitC, v >= 0)
}

// SP & memory into A, X and SP.
func las(cpu *CPU, val uint8) {
	cpu.A = cpu.SP & val
	cpu.X = cpu.A
	cpu.SP = cpu.A
	cpu.P.checkNZ(cpu.A)
}

// shx and shy store an index register anded with the high byte of the
// target address plus one. On a page cross the corrupted value also
// replaces the high byte of the destination.
func shx(cpu *CPU, base uint16) {
	dst := base + uint16(cpu.Y)
	val := cpu.X & (uint8(base>>8) + 1)
	cpu.Write8(shAddr(base, dst, val), val)
}

func shy(cpu *CPU, base uint16) {
	dst := base + uint16(cpu.X)
	val := cpu.Y & (uint8(base>>8) + 1)
	cpu.Write8(shAddr(base, dst, val), val)
}

func shAddr(base, dst uint16, val uint8) uint16 {
	if pagecrossed(base, dst) {
		return uint16(val)<<8 | dst&0xff
	}
	return base&0xff00 | dst&0xff
}

// jam halts the CPU until the next reset.
func jam(cpu *CPU) {
	cpu.halt()
}
