package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brookshear/asm"
)

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <source.asm>",
		Short: "Assemble a source file and print its instruction listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := asm.Assemble(f)
			if err != nil {
				return err
			}
			for _, line := range asm.Disassemble(p.Instructions) {
				fmt.Println(line)
			}
			return nil
		},
	}
	return cmd
}
