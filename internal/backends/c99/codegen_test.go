package c99

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/irgen"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/linker"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func generate(t *testing.T, e backend.Engine, src string) {
	t.Helper()
	p := parser.NewParser(errlog.NewErrorLog())
	prog, err := p.Parse(lexer.NewScanner(0, strings.NewReader(src)))
	if err != nil {
		t.Fatal(err)
	}
	if err = irgen.Generate(opt.Optimize(prog), e, irgen.Config{ModuleName: "test.bf", TapeSize: 300}); err != nil {
		t.Fatal(err)
	}
}

func TestSource(t *testing.T) {
	// Given
	e := NewEngine()

	// When
	generate(t, e, "+[->,.<]")
	src := e.Source()

	// Then
	for _, want := range []string{
		"/* test.bf */",
		"#include <stdint.h>",
		"static uint8_t tape[300];",
		"extern int getchar(void);",
		"extern int putchar(int p0);",
		"static int max(int p0, int p1);",
		"int main(void) {",
		"if (t",
		"(int8_t)t",
		"goto b",
		"*(uint8_t**)&s",
		" = tape;",
		"(uint8_t*)t",
		"(int8_t)0",
		"max(t",
		"(int)(int8_t)t",
		"putchar(t",
		"return 0;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("C source does not contain %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "stdio.h") {
		t.Errorf("stdio.h must not be included")
	}
}

func TestEveryLabelIsDefinedOnce(t *testing.T) {
	e := NewEngine()
	generate(t, e, "[[-]>[-]<]")
	src := e.Source()
	for _, f := range e.Funcs() {
		for _, blk := range e.Func(f).Blocks {
			label := "\n" + blockName(blk) + ":;"
			if strings.Count(src, label) != 1 {
				t.Errorf("label %s appears %d times", blockName(blk), strings.Count(src, label))
			}
		}
	}
}

func requireToolchain(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler available")
	}
}

func TestRunObject(t *testing.T) {
	requireToolchain(t)
	// Given
	b, err := NewBackend("", "", ModeObject, nil)
	if err != nil {
		t.Fatal(err)
	}
	generate(t, b, helloWorld)
	dir := t.TempDir()
	out := filepath.Join(dir, "hello.o")
	b.KeepSource = filepath.Join(dir, "hello.c")

	// When
	_, err = b.Run(out)

	// Then
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{out, b.KeepSource} {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Errorf("%s was not written", p)
		}
	}
}

func TestRunExecutable(t *testing.T) {
	requireToolchain(t)
	if h, err := linker.PrepareRuntime(nil); err != nil {
		t.Skipf("no C runtime available: %v", err)
	} else {
		linker.Release(h)
	}
	// Given
	b, err := NewBackend("", "", ModeExecutable, nil)
	if err != nil {
		t.Fatal(err)
	}
	generate(t, b, helloWorld)
	out := filepath.Join(t.TempDir(), "hello")

	// When
	if _, err = b.Run(out); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	cmd := exec.Command(out)
	cmd.Stdout = &stdout
	err = cmd.Run()

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "Hello World!\n" {
		t.Errorf("hello world printed %q", stdout.String())
	}
}

func TestRunCompileError(t *testing.T) {
	b, err := NewBackend("", "", ModeObject, nil)
	if err != nil {
		t.Fatal(err)
	}
	b.config.Compiler.Bin = "/nonexistent/cc"
	generate(t, b, "+")
	_, err = b.Run(filepath.Join(t.TempDir(), "x.o"))
	if _, ok := err.(*CompileError); !ok {
		t.Errorf("expected a CompileError, got %v", err)
	}
}

func TestModuleNameCannotCloseComment(t *testing.T) {
	e := NewEngine()
	e.Module("a*/b.bf")
	src := e.Source()
	if !strings.HasPrefix(src, "/* a*\\/b.bf */\n") {
		t.Errorf("unexpected header:\n%s", src)
	}
}
