package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vs-ude/brainfuck/internal/config"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/irgen"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

// parseFile reads and parses source. Syntax errors are printed before they are returned.
func parseFile(source string) (*parser.Program, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, &errlog.SourceError{Path: source, Err: err}
	}
	defer f.Close()

	log := errlog.NewErrorLog()
	lmap := errlog.NewLocationMap()
	file := lmap.AddFile(errlog.NewSourceFile(source))
	p := parser.NewParser(log)
	prog, err := p.Parse(lexer.NewScanner(file, f, scannerOptions(source)...))
	if err != nil {
		if len(log.Errors) != 0 {
			printErrors(log, lmap)
			return nil, &reportedError{err: err}
		}
		return nil, err
	}
	return prog, nil
}

// compileFile runs the whole pipeline for one source file.
// stdin and stdout are only used when the program is run as a script.
func compileFile(source string, stdin io.Reader, stdout io.Writer) error {
	if flagTapeSize <= 0 {
		return fmt.Errorf("invalid tape size %d", flagTapeSize)
	}
	prog, err := parseFile(source)
	if err != nil {
		return err
	}
	before := parser.Count(prog.Children)
	prog = opt.Optimize(prog)
	if config.Verbose() {
		fmt.Fprintf(os.Stderr, "Optimized %d instructions into %d\n", before, parser.Count(prog.Children))
	}
	if flagAST {
		_, err = fmt.Fprintln(stdout, prog.String())
		return err
	}

	b, err := setupBackend(source, stdin, stdout)
	if err != nil {
		return err
	}
	if err = irgen.Generate(prog, b, irgen.Config{ModuleName: source, TapeSize: flagTapeSize}); err != nil {
		return err
	}
	if config.Verbose() {
		fmt.Fprintln(os.Stderr, "OK")
	}

	message, err := b.Run(outputPath(source))
	if err != nil {
		if message != "" {
			fmt.Fprintln(os.Stderr, message)
		}
		return err
	}
	if message != "" && (config.Verbose() || flagCheck) {
		fmt.Fprintln(os.Stderr, message)
	}
	return nil
}

// isIncomplete reports whether more input could close all loops of a program.
func isIncomplete(err error) bool {
	var serr *errlog.Error
	return errors.As(err, &serr) && serr.Code() == errlog.ErrorUnterminatedLoop
}
