package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brookshear/asm"
	"brookshear/vm"
)

func newRunCmd() *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "run <source.asm>",
		Short: "Assemble and execute a program, printing a register dump on halt or error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cmd.Flags().Changed("trace") {
				cfg.Run.Trace = trace
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := asm.Assemble(f)
			if err != nil {
				return err
			}
			in, err := vm.New(vm.WithProgram(p))
			if err != nil {
				return err
			}

			var steps uint64
			for !in.Halted {
				if cfg.Run.MaxSteps != 0 && steps >= cfg.Run.MaxSteps {
					return fmt.Errorf("exceeded max-steps limit of %d without halting", cfg.Run.MaxSteps)
				}
				if err := in.Step(); err != nil {
					if cfg.Run.DumpOnHalt {
						dumpState(os.Stderr, in, cfg)
					}
					return err
				}
				steps++
				if cfg.Run.Trace {
					fmt.Fprintf(os.Stderr, "pc=%02X step=%d\n", in.PC, in.StepCount)
				}
			}

			if cfg.Run.DumpOnHalt {
				dumpState(os.Stdout, in, cfg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print each step's program counter")
	return cmd
}
