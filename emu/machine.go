package emu

import (
	"fmt"
	"os"

	"famicore/emu/log"
	"famicore/m6502"
)

// Machine wires a CPU to a flat RAM bank and an optional console port. It
// runs raw program images, not cartridges: the image bytes land at the
// configured load address and execution starts at the reset vector.
type Machine struct {
	CPU *m6502.CPU
	Map *MemMap
	RAM []byte

	cfg Config
}

func NewMachine(cfg Config) *Machine {
	if cfg.Memory.RAMSize == 0 {
		cfg.Memory.RAMSize = 0x10000
	}

	mmap := &MemMap{}
	ram := make([]byte, cfg.Memory.RAMSize)
	mmap.MapSlice(0x0000, 0xFFFF, ram)

	if cfg.General.CharOut != 0 {
		mmap.MapReg8(cfg.General.CharOut, &Reg8{
			OnWrite: func(val uint8) { os.Stdout.Write([]byte{val}) },
		})
	}

	return &Machine{
		CPU: m6502.NewCPU(mmap),
		Map: mmap,
		RAM: ram,
		cfg: cfg,
	}
}

// LoadFile copies a raw image into RAM at the configured load address and
// resets the CPU.
func (m *Machine) LoadFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.Load(buf)
}

func (m *Machine) Load(image []byte) error {
	load := int(m.cfg.Memory.LoadAddr)
	if load+len(image) > 0x10000 {
		return fmt.Errorf("image of %d bytes does not fit at %04x", len(image), load)
	}

	for i, b := range image {
		m.Map.Write8(uint16(load+i), b)
	}

	if entry := m.cfg.Memory.Entry; entry != 0 {
		m.CPU.Write16(m6502.ResetVector, entry)
	}

	m.CPU.Reset()
	log.ModEmu.InfoZ("image loaded").
		Hex16("load", m.cfg.Memory.LoadAddr).
		Int("size", len(image)).
		Hex16("entry", m.CPU.PC).
		End()
	return nil
}

// Run executes until the configured cycle budget runs out or the CPU halts.
// It returns the number of cycles consumed.
func (m *Machine) Run() int64 {
	until := m.cfg.General.MaxCycles
	if until == 0 {
		until = 1<<63 - 1
	}

	start := m.CPU.Clock
	if m.cfg.TraceOut != nil {
		d := m6502.NewDisasm(m.CPU, m.cfg.TraceOut, false)
		d.Run(until)
		m.cfg.TraceOut.Close()
	} else {
		m.CPU.Run(until)
	}

	return m.CPU.Clock - start
}
