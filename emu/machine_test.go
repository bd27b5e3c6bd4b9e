package emu

import (
	"bytes"
	"strings"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Memory.LoadAddr = 0x0200
	cfg.Memory.Entry = 0x0200
	cfg.General.CharOut = 0 // keep stdout quiet
	return cfg
}

func TestMachineRun(t *testing.T) {
	// LDA #$42
	// STA $10
	// JAM
	image := []byte{0xa9, 0x42, 0x85, 0x10, 0x02}

	m := NewMachine(testConfig())
	if err := m.Load(image); err != nil {
		t.Fatal(err)
	}

	if m.CPU.PC != 0x0200 {
		t.Fatalf("PC = %04X, want 0200", m.CPU.PC)
	}

	cycles := m.Run()
	if cycles != 5 {
		t.Errorf("ran %d cycles, want 5", cycles)
	}
	if !m.CPU.IsHalted() {
		t.Error("CPU should be halted")
	}
	if got := m.Map.Read8(0x0010); got != 0x42 {
		t.Errorf("$0010 = %02X, want 42", got)
	}
}

func TestMachineCycleBudget(t *testing.T) {
	// JMP $0200, spins forever.
	image := []byte{0x4c, 0x00, 0x02}

	cfg := testConfig()
	cfg.General.MaxCycles = 100

	m := NewMachine(cfg)
	if err := m.Load(image); err != nil {
		t.Fatal(err)
	}

	cycles := m.Run()
	if cycles < 100 || cycles > 102 {
		t.Errorf("ran %d cycles, want about 100", cycles)
	}
	if m.CPU.IsHalted() {
		t.Error("CPU should not be halted")
	}
}

func TestMachineImageTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Memory.LoadAddr = 0xFF00

	m := NewMachine(cfg)
	if err := m.Load(make([]byte, 0x0200)); err == nil {
		t.Fatal("expected an error")
	}
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestMachineTrace(t *testing.T) {
	// LDA #$42
	// JAM
	image := []byte{0xa9, 0x42, 0x02}

	var bb bytes.Buffer
	cfg := testConfig()
	cfg.TraceOut = nopCloser{&bb}

	m := NewMachine(cfg)
	if err := m.Load(image); err != nil {
		t.Fatal(err)
	}
	m.Run()

	trace := bb.String()
	if !strings.Contains(trace, "LDA #$42") {
		t.Errorf("trace should contain the LDA instruction:\n%s", trace)
	}
	if !strings.Contains(trace, "*JAM") {
		t.Errorf("trace should contain the JAM opcode:\n%s", trace)
	}
}
