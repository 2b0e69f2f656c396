package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/irgen"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

func TestEngineArithmetic(t *testing.T) {
	// Given
	var out bytes.Buffer
	b := NewBackend(nil, &out)
	putchar := b.Declare("putchar", backend.TypeInt32, backend.TypeInt32)
	main := b.Define("main", backend.TypeInt32)
	b.EnterBlock(b.AppendBlock(main))

	// When
	x := b.Sub(b.Int(backend.TypeInt8, 3), b.Int(backend.TypeInt8, 5))
	b.Call(putchar, b.Extend(x, backend.TypeInt32))
	y := b.Add(b.Int(backend.TypeInt32, 1000), b.Int(backend.TypeInt32, 7))
	b.Call(putchar, y)
	b.Return(b.Trunc(b.Int(backend.TypeInt32, 0x1ff), backend.TypeInt8))
	_, err := b.Run("")

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{254, 1007 & 0xff}) {
		t.Errorf("got %v", out.Bytes())
	}
	if b.ExitCode() != 255 {
		t.Errorf("exit code %d", b.ExitCode())
	}
}

func TestEngineMissingTerminator(t *testing.T) {
	b := NewBackend(nil, &bytes.Buffer{})
	main := b.Define("main", backend.TypeInt32)
	b.EnterBlock(b.AppendBlock(main))
	b.Alloca(backend.TypePointer)
	if _, err := b.Run(""); err == nil {
		t.Errorf("expected an error for a block without terminator")
	}
}

func TestEngineNoMain(t *testing.T) {
	b := NewBackend(nil, &bytes.Buffer{})
	b.Declare("getchar", backend.TypeInt32)
	if _, err := b.Run(""); err == nil {
		t.Errorf("expected an error without main")
	}
}

func generate(t *testing.T, b *Backend, src string) {
	t.Helper()
	p := parser.NewParser(errlog.NewErrorLog())
	prog, err := p.Parse(lexer.NewScanner(0, strings.NewReader(src)))
	if err != nil {
		t.Fatal(err)
	}
	if err = irgen.Generate(opt.Optimize(prog), b, irgen.Config{TapeSize: 16}); err != nil {
		t.Fatal(err)
	}
}

func TestSessionKeepsTape(t *testing.T) {
	// Given
	var out bytes.Buffer
	s := NewSession(16, strings.NewReader("A"), &out)

	// When
	b := s.NewBackend()
	generate(t, b, "+++>")
	if _, err := b.Run(""); err != nil {
		t.Fatal(err)
	}
	b = s.NewBackend()
	generate(t, b, "<.>,.")
	if _, err := b.Run(""); err != nil {
		t.Fatal(err)
	}

	// Then
	if !bytes.Equal(out.Bytes(), []byte{3, 'A'}) {
		t.Errorf("got %v", out.Bytes())
	}
	if s.Cursor() != 1 || s.Cell(0) != 3 || s.Cell(1) != 'A' {
		t.Errorf("unexpected session state: cursor %d", s.Cursor())
	}

	s.Reset()
	if s.Cursor() != 0 || s.Cell(0) != 0 {
		t.Errorf("reset did not clear the session")
	}
}
