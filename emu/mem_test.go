package emu

import (
	"errors"
	"testing"
)

func TestMemMap(t *testing.T) {
	mm := MemMap{}
	buf := make([]byte, 0x0800)
	buf[0x12] = 0x34
	mm.MapSlice(0x0000, 0x07FF, buf)

	if val := mm.Read8(0x0012); val != 0x34 {
		t.Fatalf("Read8() = 0x%x, want 0x%x", val, 0x34)
	}

	mm.Write8(0x0012, 0x23)
	if val := mm.Read8(0x0012); val != 0x23 {
		t.Fatalf("Read8() = 0x%x, want 0x%x", val, 0x23)
	}
}

func TestMemMapUnmapped(t *testing.T) {
	mm := MemMap{}
	if val := mm.Read8(0x1234); val != 0 {
		t.Fatalf("Read8() = 0x%x, want 0", val)
	}
	// dropped, not panicking
	mm.Write8(0x1234, 0xFF)
}

func TestMemMapOverlappingRange(t *testing.T) {
	mm := MemMap{}
	mm.MapSlice(0x0000, 0x07FF, make([]byte, 0x0800))

	if err := mm.Map(0x0050, 0x0051, &Reg8{}); !errors.Is(err, ErrOverlappingRange) {
		t.Fatal(err)
	}
}

func TestMirroredRam(t *testing.T) {
	mm := MemMap{}
	buf := make([]byte, 0x0800)

	// 2K of RAM mirrored 4 times.
	mm.MapSlice(0x0000, 0x1FFF, buf)

	mm.Write8(0x0000, 0xFF)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if val := mm.Read8(addr); val != 0xFF {
			t.Fatalf("Read8(%04x) = 0x%x, want 0x%x", addr, val, 0xFF)
		}
	}

	mm.Write8(0x1FFF, 0xAB)
	if buf[0x07FF] != 0xAB {
		t.Fatalf("mirrored write did not reach the backing buffer")
	}
}

func TestReg8(t *testing.T) {
	mm := MemMap{}
	mm.MapSlice(0x0000, 0xFFFF, make([]byte, 0x10000))

	var written []uint8
	reg := &Reg8{
		OnWrite: func(val uint8) { written = append(written, val) },
	}
	mm.MapReg8(0x4016, reg)

	mm.Write8(0x4016, 0x01)
	mm.Write8(0x4016, 0x02)
	if len(written) != 2 || written[0] != 0x01 || written[1] != 0x02 {
		t.Fatalf("written = %v, want [1 2]", written)
	}
	if val := mm.Read8(0x4016); val != 0x02 {
		t.Fatalf("Read8() = 0x%x, want 0x02", val)
	}

	reg.OnRead = func() uint8 { return 0x40 }
	if val := mm.Read8(0x4016); val != 0x40 {
		t.Fatalf("Read8() = 0x%x, want 0x40", val)
	}
}
