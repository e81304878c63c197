package main

import (
	"fmt"
	"io"

	"brookshear/config"
	"brookshear/vm"
)

// dumpState writes the machine's registers and memory to w, formatted per
// cfg.Display.
func dumpState(w io.Writer, in *vm.Instance, cfg *config.Config) {
	fmt.Fprintf(w, "registers:\n")
	for i, v := range in.Registers {
		fmt.Fprintf(w, "  R%X = %s\n", i, formatByte(v, cfg.Display.NumberFormat))
	}
	fmt.Fprintf(w, "pc = %s, steps = %d\n", formatByte(in.PC, cfg.Display.NumberFormat), in.StepCount)

	perLine := cfg.Display.BytesPerLine
	if perLine <= 0 {
		perLine = 16
	}
	fmt.Fprintf(w, "memory:\n")
	for addr := 0; addr < len(in.Memory); addr += perLine {
		end := addr + perLine
		if end > len(in.Memory) {
			end = len(in.Memory)
		}
		fmt.Fprintf(w, "  %02X:", addr)
		for _, b := range in.Memory[addr:end] {
			fmt.Fprintf(w, " %02X", b)
		}
		fmt.Fprintln(w)
	}
}

func formatByte(v byte, format string) string {
	if format == "dec" {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%02X", v)
}
