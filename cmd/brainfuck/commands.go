package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vs-ude/brainfuck/internal/backends/c99"
	"github.com/vs-ude/brainfuck/internal/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Prints environment variables and configuration used by the compiler.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config.PrintConf()
	},
}

var printBackendCmd = &cobra.Command{
	Use:   "backend-config",
	Short: "Prints the selected configuration of the C compiler.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := config.LoadBuildTarget()
		if err != nil {
			return err
		}
		b, err := c99.NewBackend(flagNativeCompilerBinary, flagNativeCompilerConfiguration, c99.ModeExecutable, target)
		if err != nil {
			return err
		}
		b.PrintCurrentConfig()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of the compiler.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "brainfuck %s (built %s)\n", version, buildDate)
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Runs Brainfuck code line by line on a tape that is kept between lines.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return repl()
	},
}

func init() {
	printBackendCmd.Flags().StringVar(&flagNativeCompilerBinary, "cc", "", "The C compiler used for native code.")
	printBackendCmd.Flags().StringVar(&flagNativeCompilerConfiguration, "cc-config", "", "A JSON file configuring the C compiler.")
	rootCmd.AddCommand(envCmd, printBackendCmd, versionCmd, replCmd)
}
