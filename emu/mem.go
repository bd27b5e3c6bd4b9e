package emu

import (
	"errors"
	"fmt"

	"famicore/emu/log"
)

var ErrOverlappingRange = errors.New("address range overlaps an existing mapping")

type Region8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// MemMap implements the CPU bus as a flat address-to-region table. Reads at
// unmapped addresses return 0 (open bus), writes are dropped; both get
// logged once per access.
type MemMap struct {
	regions [0x10000]Region8
}

func (mmap *MemMap) Read8(addr uint16) uint8 {
	r := mmap.regions[addr]
	if r == nil {
		log.ModMem.WarnZ("read at unmapped address").Hex16("addr", addr).End()
		return 0
	}
	return r.Read8(addr)
}

func (mmap *MemMap) Write8(addr uint16, val uint8) {
	r := mmap.regions[addr]
	if r == nil {
		log.ModMem.WarnZ("write at unmapped address").Hex16("addr", addr).Hex8("val", val).End()
		return
	}
	r.Write8(addr, val)
}

func (mmap *MemMap) Reset() {
	mmap.regions = [0x10000]Region8{}
}

// Map maps a region over [addr, end], both bounds included.
func (mmap *MemMap) Map(addr, end uint16, r Region8) error {
	for a := uint32(addr); a <= uint32(end); a++ {
		if mmap.regions[a] != nil {
			return fmt.Errorf("%w: [%04x-%04x] at %04x", ErrOverlappingRange, addr, end, a)
		}
	}
	for a := uint32(addr); a <= uint32(end); a++ {
		mmap.regions[a] = r
	}
	return nil
}

// MapSlice maps a slice at a given range. A buffer smaller than the range is
// mirrored across it, which is why its size must be a power of 2.
func (mmap *MemMap) MapSlice(addr, end uint16, buf []byte) {
	if len(buf)&(len(buf)-1) != 0 {
		panic("mapped buffer size must be a power of 2")
	}
	if err := mmap.Map(addr, end, &MemRegion{
		Buf:   buf,
		base:  addr,
		mask:  uint16(len(buf) - 1),
		VSize: int(end - addr + 1),
	}); err != nil {
		panic(err)
	}
}

// MapReg8 maps an 8-bit register at a given address. The register shadows
// any region already mapped there.
func (mmap *MemMap) MapReg8(addr uint16, r8 *Reg8) {
	mmap.regions[addr] = r8
}

type MemRegion struct {
	Buf   []byte // mapped buffer
	VSize int    // virtual size (size of the mapped range)
	base  uint16
	mask  uint16
}

func (mr *MemRegion) Read8(addr uint16) uint8 {
	return mr.Buf[(addr-mr.base)&mr.mask]
}

func (mr *MemRegion) Write8(addr uint16, val uint8) {
	mr.Buf[(addr-mr.base)&mr.mask] = val
}

// Reg8 is a single byte of memory-mapped IO. The hooks, when set, intercept
// bus accesses; a nil hook falls back to the latched value.
type Reg8 struct {
	Val     uint8
	OnRead  func() uint8
	OnWrite func(val uint8)
}

func (r *Reg8) Read8(addr uint16) uint8 {
	if r.OnRead != nil {
		return r.OnRead()
	}
	return r.Val
}

func (r *Reg8) Write8(addr uint16, val uint8) {
	r.Val = val
	if r.OnWrite != nil {
		r.OnWrite(val)
	}
}
