package main

import (
	"fmt"
	"os"

	"github.com/harimsng/riscv-processor/pkg/cpu"
	"github.com/harimsng/riscv-processor/pkg/inst"
	"github.com/harimsng/riscv-processor/pkg/loader"
	"github.com/harimsng/riscv-processor/pkg/report"
	"github.com/spf13/cobra"
)

func main() {
	var maxCycles int64
	var trace bool
	var jsonPath string

	rootCmd := &cobra.Command{
		Use:   "rvsim [image.hex]",
		Short: "rvsim — cycle-accurate five-stage RV64I pipeline simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := loader.ReadFile(args[0])
			if err != nil {
				return err
			}

			core := cpu.New()
			if err := core.LoadProgram(words); err != nil {
				return err
			}
			if trace {
				core.Trace = os.Stderr
			}

			if err := core.Run(maxCycles); err != nil {
				return err
			}

			snap := report.Snapshot{
				Cycles: core.Cycles,
				PC:     core.PC,
				Regs:   core.Regs,
			}
			if err := report.Write(os.Stdout, snap); err != nil {
				return err
			}

			if jsonPath != "" {
				f, err := os.Create(jsonPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteJSON(f, snap); err != nil {
					return err
				}
				fmt.Printf("Written to %s\n", jsonPath)
			}
			return nil
		},
	}
	rootCmd.Flags().Int64Var(&maxCycles, "max-cycles", 0, "Cycle ceiling for runaway programs (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&trace, "trace", "v", false, "Print a per-cycle pipeline trace to stderr")
	rootCmd.Flags().StringVar(&jsonPath, "json", "", "Also write the final state as JSON to this path")

	disasmCmd := &cobra.Command{
		Use:   "disasm [image.hex]",
		Short: "Disassemble an instruction image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := loader.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i, w := range words {
				fmt.Printf("%6d:  %08x  %s\n", i*4, w, inst.Disassemble(inst.Word(w)))
			}
			return nil
		},
	}

	rootCmd.AddCommand(disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
