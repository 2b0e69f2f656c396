package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	"github.com/vs-ude/brainfuck/internal/backends/c99"
	"github.com/vs-ude/brainfuck/internal/backends/dummy"
	"github.com/vs-ude/brainfuck/internal/backends/llvm"
	"github.com/vs-ude/brainfuck/internal/backends/spirv"
	"github.com/vs-ude/brainfuck/internal/backends/vm"
	"github.com/vs-ude/brainfuck/internal/config"
	"github.com/vs-ude/brainfuck/internal/lexer"
)

func setupCommonFlags(cmd *cobra.Command) {
	if flagVerbose {
		config.Set("verbose", flagVerbose)
	}
	if flagBuildTargetName != "" {
		config.Set("target", flagBuildTargetName)
	}
	if cmd.Flags().Changed("comment-marker") {
		flagComments = true
	}
}

// setupBackend selects the backend for the requested kind of output.
func setupBackend(source string, stdin io.Reader, stdout io.Writer) (backend.Backend, error) {
	switch {
	case flagRepresentation:
		return llvm.NewBackend(), nil
	case flagScript:
		return vm.NewBackend(stdin, stdout), nil
	case flagSpirv:
		return spirv.NewBackend(), nil
	case flagCheck:
		return dummy.NewBackend(), nil
	}
	target, err := config.LoadBuildTarget()
	if err != nil {
		return nil, err
	}
	mode := c99.ModeExecutable
	if flagCompile {
		mode = c99.ModeObject
	}
	b, err := c99.NewBackend(flagNativeCompilerBinary, flagNativeCompilerConfiguration, mode, target)
	if err != nil {
		return nil, err
	}
	if flagKeepSource {
		b.KeepSource = replaceExt(outputPath(source), ".c")
	}
	return b, nil
}

// scannerOptions translates the comment flags.
func scannerOptions(source string) []lexer.Option {
	opts := []lexer.Option{lexer.WithPath(source)}
	if flagComments {
		opts = append(opts, lexer.WithCommentMarker(flagCommentMarker))
	}
	return opts
}

// outputPath is the file written for source. Without -o the name is derived from the source file.
// The LLVM representation goes to standard output then.
func outputPath(source string) string {
	if flagOutput != "" {
		return flagOutput
	}
	switch {
	case flagRepresentation:
		return "-"
	case flagCompile:
		return replaceExt(source, ".o")
	case flagSpirv:
		return replaceExt(source, ".spv")
	}
	out := replaceExt(source, "")
	if out == source {
		out += ".out"
	}
	return out
}

func replaceExt(path string, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
