package main

import (
	"github.com/vs-ude/brainfuck/internal/irgen"
)

var flagCompile bool
var flagRepresentation bool
var flagScript bool
var flagSpirv bool
var flagAST bool
var flagCheck bool
var flagComments bool
var flagCommentMarker string
var flagOutput string
var flagVerbose bool
var flagTapeSize int
var flagNativeCompilerBinary string
var flagNativeCompilerConfiguration string
var flagKeepSource bool
var flagBuildTargetName string

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagCompile, "compile", "c", false, "Only compile and assemble, then write a native object file (.o).")
	f.BoolVarP(&flagRepresentation, "representation", "r", false, "Emit the LLVM representation (.ll) to standard output or the file given by -o. Needs LLVM 15 or newer (opaque pointers).")
	f.BoolVarP(&flagScript, "script", "s", false, "Run the source file as a script.")
	f.BoolVar(&flagSpirv, "spirv", false, "Write a SPIR-V module (.spv).")
	f.BoolVar(&flagAST, "ast", false, "Print the optimized syntax tree and stop.")
	f.BoolVar(&flagCheck, "check", false, "Check the syntax only, nothing is written.")
	f.StringVarP(&flagOutput, "output", "o", "", "Write the output to this file.")
	f.BoolVarP(&flagKeepSource, "keep", "k", false, "Keep the generated C code next to the output.")
	f.StringVar(&flagNativeCompilerBinary, "cc", "", "The C compiler used for native code.")
	f.StringVar(&flagNativeCompilerConfiguration, "cc-config", "", "A JSON file configuring the C compiler.")
	rootCmd.MarkFlagsMutuallyExclusive("compile", "representation", "script", "spirv", "ast", "check")

	p := rootCmd.PersistentFlags()
	p.BoolVarP(&flagVerbose, "verbose", "v", false, "More verbose output while compiling. Echoes external commands.")
	p.IntVar(&flagTapeSize, "tape-size", irgen.DefaultTapeSize, "Number of cells on the tape.")
	p.BoolVarP(&flagComments, "enable-single-line-comment", "m", false, "Ignore everything from the comment marker to the end of the line. Useful together with a shebang.")
	p.StringVar(&flagCommentMarker, "comment-marker", "#", "The marker starting a single line comment. Implies -m.")
	p.StringVarP(&flagBuildTargetName, "target", "b", "", "Name of the build target. A JSON file of the same name must be located in $BRAINFUCK_BASE/build_targets.")
}
