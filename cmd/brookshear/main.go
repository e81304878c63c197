// Command brookshear assembles and runs programs for the 16-register,
// 256-byte Brookshear-style machine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brookshear/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brookshear",
		Short:         "Assembler and emulator for the Brookshear-style teaching machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAssembleCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	return root
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: using default config:", err)
		return config.DefaultConfig()
	}
	return cfg
}
