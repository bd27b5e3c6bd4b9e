// Package m6502 emulates the MOS 6502 CPU variant found in the NES (Ricoh
// 2A03): no decimal mode, plus the undocumented opcodes game code and test
// ROMs rely on.
package m6502

import (
	"fmt"

	"famicore/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = 0xFFFA // Non-Maskable Interrupt
	ResetVector = 0xFFFC // Reset
	IRQVector   = 0xFFFE // Interrupt Request / BRK
)

// Bus is the CPU's view of the memory system. Reads may have side effects
// (memory-mapped registers), so the CPU never caches what it reads.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

type CPU struct {
	bus Bus

	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  P

	Clock int64 // elapsed cycles

	halted bool
}

// NewCPU creates a new CPU at power-up state.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		A:   0x00,
		X:   0x00,
		Y:   0x00,
		SP:  0xFD,
		P:   0x24, // unused + interrupt disable
		PC:  0x0000,
	}
}

// Reset loads the reset vector and restores the power-up stack pointer and
// status register.
func (c *CPU) Reset() {
	c.PC = c.Read16(ResetVector)
	c.SP = 0xFD
	c.P = 0x24
	c.halted = false
}

// Run executes instructions until the cycle counter reaches until, or the
// CPU halts on a JAM opcode.
func (c *CPU) Run(until int64) {
	var opcode uint8
	for c.Clock < until && !c.halted {
		opcode = c.Read8(c.PC)
		ops[opcode](c)
	}

	if c.halted {
		log.ModCPU.WarnZ("CPU halted").
			Hex16("PC", c.PC).
			Hex8("opcode", opcode).
			End()
	}
}

// Step executes a single instruction and returns the number of cycles it
// consumed.
func (c *CPU) Step() int64 {
	if c.halted {
		return 0
	}
	start := c.Clock
	ops[c.Read8(c.PC)](c)
	return c.Clock - start
}

func (c *CPU) halt() {
	c.halted = true
}

func (c *CPU) IsHalted() bool {
	return c.halted
}

func (c *CPU) Read8(addr uint16) uint8 {
	return c.bus.Read8(addr)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.bus.Write8(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) Write16(addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	c.Write8(addr, lo)
	c.Write8(addr+1, hi)
}

/* stack operations */

// The stack lives in page 1 and grows downward. 16-bit values are pushed
// high byte first, so they read back little-endian in memory.

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP += 1
	top := uint16(c.SP) + 0x0100
	return c.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// P is the 6502 Processor Status Register.
type P uint8

const (
	pbitN = 7 - iota // Negative flag
	pbitV            // oVerflow flag
	pbitU            // Unused, reads as 1
	pbitB            // Break flag
	pbitD            // Decimal mode flag (stored, never acted upon)
	pbitI            // Interrupt disable flag
	pbitZ            // Zero flag
	pbitC            // Carry flag
)

func (p P) N() bool { return p&(1<<pbitN) != 0 }
func (p P) V() bool { return p&(1<<pbitV) != 0 }
func (p P) B() bool { return p&(1<<pbitB) != 0 }
func (p P) D() bool { return p&(1<<pbitD) != 0 }
func (p P) I() bool { return p&(1<<pbitI) != 0 }
func (p P) Z() bool { return p&(1<<pbitZ) != 0 }
func (p P) C() bool { return p&(1<<pbitC) != 0 }

// checkNZ sets N if bit 7 of v is set and Z if v == 0, clearing them
// otherwise.
func (p *P) checkNZ(v uint8) {
	p.writeBit(pbitN, v&0x80 != 0)
	p.writeBit(pbitZ, v == 0)
}

// sets Z flag if v == 0, clears it otherwise.
func (p *P) checkZ(v uint8) {
	p.writeBit(pbitZ, v == 0)
}

func (p *P) checkCV(x, y uint8, sum uint16) {
	// forward carry or unsigned overflow.
	p.writeBit(pbitC, sum > 0xFF)

	// signed overflow, can only happen if the sign of the sum differs
	// from that of both operands.
	v := (uint16(x) ^ sum) & (uint16(y) ^ sum) & 0x80
	p.writeBit(pbitV, v != 0)
}

func (p *P) writeBit(i int, v bool) {
	if v {
		p.setBit(i)
	} else {
		p.clearBit(i)
	}
}

func (p *P) setBit(i int) {
	*p |= P(1 << i)
}

func (p *P) clearBit(i int) {
	*p &= ^(1 << i) & 0xff
}

func (p *P) ibit(i int) uint8 {
	return (uint8(*p) & (1 << i)) >> i
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		s[i] = bits[i+int(8*p.ibit(7-i))]
	}
	return string(s)
}

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s CYC:%d",
		c.PC, c.A, c.X, c.Y, c.SP, c.P, c.Clock)
}
