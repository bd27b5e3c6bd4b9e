package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"famicore/emu"
	"famicore/m6502"
)

// runMain runs the emulator directly with the given image.
func runMain(args Run) {
	cfg := emu.LoadConfigOrDefault()
	if args.LoadAddr != 0 {
		cfg.Memory.LoadAddr = args.LoadAddr
	}
	if args.Entry != 0 {
		cfg.Memory.Entry = args.Entry
	}
	if args.MaxCycles != 0 {
		cfg.General.MaxCycles = args.MaxCycles
	}
	if args.Trace != nil {
		cfg.TraceOut = args.Trace
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	m := emu.NewMachine(cfg)
	checkf(m.LoadFile(args.ImagePath), "failed to load image")

	cycles := m.Run()
	fmt.Fprintf(os.Stderr, "ran %d cycles, stopped at %s\n", cycles, m.CPU)
}

// disasmMain prints a static listing of an image without running it.
func disasmMain(args Disasm) {
	cfg := emu.LoadConfigOrDefault()
	if args.LoadAddr != 0 {
		cfg.Memory.LoadAddr = args.LoadAddr
	}
	cfg.General.MaxCycles = 0
	cfg.TraceOut = nil

	m := emu.NewMachine(cfg)
	checkf(m.LoadFile(args.ImagePath), "failed to load image")

	d := m6502.NewDisasm(m.CPU, os.Stdout, false)
	d.ListBlock(cfg.Memory.LoadAddr, args.Count)
}
