package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brookshear/asm"
)

func newAssembleCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "assemble <source.asm>",
		Short: "Assemble a source file into its instruction and data image",
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
			img := p.Image()

			if outPath != "" {
				return os.WriteFile(outPath, img, 0644)
			}
			fmt.Println(hex.EncodeToString(img))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the assembled image to this file instead of stdout")
	return cmd
}
