package c99

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	c "github.com/vs-ude/brainfuck/internal/config"
	"github.com/vs-ude/brainfuck/internal/linker"
)

// Mode selects the artifact produced by Run.
type Mode int

const (
	// ModeExecutable links a standalone executable.
	ModeExecutable Mode = iota
	// ModeObject stops after compiling the object file.
	ModeObject
)

// Backend This backend implements compilation to native binaries via C99 code.
type Backend struct {
	*Engine
	config Config
	mode   Mode
	target *c.BuildTargetConfig
	// KeepSource is a path the generated C code is copied to. Empty means the code is discarded.
	KeepSource string
}

// Run compiles the generated C code and writes the object file or executable to output.
// All intermediate files are removed before Run returns.
func (b *Backend) Run(output string) (message string, err error) {
	output, err = filepath.Abs(output)
	if err != nil {
		return "", err
	}
	var work string
	var h *linker.Handle
	if b.mode == ModeExecutable {
		h, err = linker.PrepareRuntime(b.target)
		if err != nil {
			return "Unable to locate the C runtime", err
		}
		defer linker.Release(h)
		work = h.WorkDir
	} else {
		work, err = os.MkdirTemp("", "brainfuck-")
		if err != nil {
			return "", err
		}
		defer os.RemoveAll(work)
	}

	src := []byte(b.Source())
	if err = os.WriteFile(filepath.Join(work, "program.c"), src, 0600); err != nil {
		message = "Error writing target sources"
		return
	}
	if b.KeepSource != "" {
		if err = os.WriteFile(b.KeepSource, src, 0644); err != nil {
			message = "Error writing target sources"
			return
		}
	}
	object := output
	if b.mode == ModeExecutable {
		object = filepath.Join(work, "program.o")
	}
	if err = compileSource(work, "program.c", object, b.config); err != nil {
		message = "Unable to compile the sources"
		return
	}
	if b.mode == ModeObject {
		return "Wrote " + output, nil
	}
	if err = linker.Link(object, h, output); err != nil {
		message = "Error while linking the binary"
		return
	}
	return "Wrote " + output, nil
}

// NewBackend constructs the backend and its configuration according to the given flags.
func NewBackend(compilerPath string, compilerConfigPath string, mode Mode, target *c.BuildTargetConfig) (*Backend, error) {
	b := &Backend{
		Engine: NewEngine(),
		config: Config{},
		mode:   mode,
		target: target,
	}
	if compilerConfigPath != "" {
		if err := backend.LoadConfig(compilerConfigPath, &b.config); err != nil {
			return nil, err
		}
		_, p := filepath.Split(compilerConfigPath)
		b.config.configTriplet = strings.TrimSuffix(p, ".json")
		if compilerPath != "" {
			b.config.Compiler.Bin = compilerPath
			fmt.Fprintln(os.Stderr, "Warning: Incorrect configuration of the compiler could lead to undefined behavior and issues.")
		}
	} else if compilerPath != "" {
		if err := b.detectConfig(compilerPath); err != nil {
			if c.Verbose() {
				fmt.Fprintln(os.Stderr, "No configuration for", compilerPath+":", err)
			}
			b.config.Default()
			b.config.Compiler.Bin = compilerPath
		}
	} else {
		b.config.Default()
	}
	return b, nil
}

func (b *Backend) detectConfig(compilerPath string) error {
	p, err := getConfigName(compilerPath)
	if err != nil {
		return err
	}
	if err = backend.LoadConfig(p, &b.config); err != nil {
		return err
	}
	b.config.configTriplet = strings.TrimSuffix(p, ".json")
	return nil
}

// PrintCurrentConfig prints the configuration of the backend.
func (b *Backend) PrintCurrentConfig() {
	backend.PrintConfig(&b.config)
}

var _ backend.Backend = (*Backend)(nil)
