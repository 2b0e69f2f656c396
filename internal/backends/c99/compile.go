package c99

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	c "github.com/vs-ude/brainfuck/internal/config"
)

// CompileError is returned if the C compiler fails.
type CompileError struct {
	Command string
	Output  string
	Err     error
}

func (e *CompileError) Error() string {
	msg := "c99: compiler failed: " + e.Command
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// compileSource translates the C file `source` in `dir` into the object file `object`.
func compileSource(dir string, source string, object string, config Config) error {
	args := append(getCompilationArgs(config), "-c", source, "-o", object)
	compiler := exec.Command(config.Compiler.Bin, args...)
	compiler.Dir = dir
	var buf bytes.Buffer
	compiler.Stdout, compiler.Stderr = getOutput(&buf)
	if c.Verbose() {
		fmt.Fprintln(os.Stderr, "IN", dir)
		fmt.Fprintln(os.Stderr, compiler.String())
	}
	if err := compiler.Run(); err != nil || !compiler.ProcessState.Success() {
		if err == nil {
			err = fmt.Errorf("exit status %d", compiler.ProcessState.ExitCode())
		}
		return &CompileError{Command: compiler.String(), Output: buf.String(), Err: err}
	}
	return nil
}

// getOutput streams the output of child processes to the terminal in verbose mode.
// Otherwise it is collected in buf and only shown if the command fails.
func getOutput(buf *bytes.Buffer) (io.Writer, io.Writer) {
	if c.Verbose() {
		return os.Stdout, os.Stderr
	}
	return buf, buf
}

func getCompilationArgs(config Config) []string {
	args := strings.Fields(config.Compiler.RequiredFlags)
	if c.Verbose() {
		args = append(args, strings.Fields(config.Compiler.DebugFlags)...)
	} else {
		args = append(args, strings.Fields(config.Compiler.ReleaseFlags)...)
	}
	return args
}
