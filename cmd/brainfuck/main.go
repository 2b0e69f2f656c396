package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// The compiler version info
var (
	version   string = "dev"
	buildDate string = "-"
)

var rootCmd = &cobra.Command{
	Use:   "brainfuck [flags] <source-file>",
	Short: "Brainfuck compiler and interpreter",
	Long: `Compiles a Brainfuck program to an executable file.
With -c an object file is written instead, -r emits the LLVM representation,
--spirv a SPIR-V module and -s runs the program right away.`,
	Example: `  brainfuck helloworld.bf
  brainfuck -s helloworld.bf
  brainfuck -c -o hello.o helloworld.bf
  #!/usr/local/bin/brainfuck -ms`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupCommonFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return compileFile(args[0], os.Stdin, os.Stdout)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
