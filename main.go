package main

import (
	"fmt"
	"os"
)

var version = "devel"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		fmt.Println("famicore", version)
	case disasmMode:
		disasmMain(cli.Disasm)
	case runMode:
		runMain(cli.Run)
	}
}
