package irgen

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	"github.com/vs-ude/brainfuck/internal/backends/vm"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func compile(t *testing.T, src string) *parser.Program {
	t.Helper()
	p := parser.NewParser(errlog.NewErrorLog())
	prog, err := p.Parse(lexer.NewScanner(0, strings.NewReader(src)))
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	return opt.Optimize(prog)
}

func run(t *testing.T, src string, input string, cfg Config) []byte {
	t.Helper()
	var out bytes.Buffer
	b := vm.NewBackend(strings.NewReader(input), &out)
	if err := Generate(compile(t, src), b, cfg); err != nil {
		t.Fatalf("generate(%q): %v", src, err)
	}
	if _, err := b.Run(""); err != nil {
		t.Fatalf("run(%q): %v", src, err)
	}
	if b.ExitCode() != 0 {
		t.Errorf("run(%q) exited with %d", src, b.ExitCode())
	}
	return out.Bytes()
}

func TestHelloWorld(t *testing.T) {
	got := string(run(t, helloWorld, "", Config{}))
	if got != "Hello World!\n" {
		t.Errorf("hello world printed %q", got)
	}
}

func TestLoopMovesCell(t *testing.T) {
	for _, v := range []int{0, 1, 2, 255} {
		// Given
		src := strings.Repeat("+", v) + "[->+<]>.<."

		// When
		got := run(t, src, "", Config{})

		// Then
		if len(got) != 2 || int(got[0]) != v || got[1] != 0 {
			t.Errorf("moving %d printed %v", v, got)
		}
	}
}

func TestCellsWrapAround(t *testing.T) {
	got := run(t, strings.Repeat("+", 255)+".+.-.", "", Config{})
	if !bytes.Equal(got, []byte{255, 0, 255}) {
		t.Errorf("got %v", got)
	}
	got = run(t, "-.", "", Config{})
	if !bytes.Equal(got, []byte{255}) {
		t.Errorf("got %v", got)
	}
	got = run(t, strings.Repeat("+", 300)+".", "", Config{})
	if !bytes.Equal(got, []byte{44}) {
		t.Errorf("got %v", got)
	}
}

func TestInput(t *testing.T) {
	if got := string(run(t, ",[.,]", "echo", Config{})); got != "echo" {
		t.Errorf("echo printed %q", got)
	}
	// End of input stores 0, not the sentinel returned by getchar.
	if got := run(t, "+++,.", "", Config{}); !bytes.Equal(got, []byte{0}) {
		t.Errorf("EOF stored %v", got)
	}
	if got := run(t, ",,.", "\xff", Config{}); !bytes.Equal(got, []byte{0}) {
		t.Errorf("second read after the last byte stored %v", got)
	}
}

func TestTapeWrapsAround(t *testing.T) {
	got := run(t, "<+>>>>.", "", Config{TapeSize: 4})
	if !bytes.Equal(got, []byte{1}) {
		t.Errorf("got %v", got)
	}
}

func TestNetZeroUpdate(t *testing.T) {
	got := run(t, "+++>+-<.>.", "", Config{})
	if !bytes.Equal(got, []byte{3, 0}) {
		t.Errorf("got %v", got)
	}
}

// tracer records the control flow calls made by the generator.
type tracer struct {
	*vm.Backend
	trace []string
}

func (tr *tracer) AppendBlock(f backend.Func) backend.Block {
	b := tr.Backend.AppendBlock(f)
	tr.trace = append(tr.trace, fmt.Sprintf("append %d", b))
	return b
}

func (tr *tracer) EnterBlock(b backend.Block) {
	tr.trace = append(tr.trace, fmt.Sprintf("enter %d", b))
	tr.Backend.EnterBlock(b)
}

func (tr *tracer) Branch(b backend.Block) {
	tr.trace = append(tr.trace, fmt.Sprintf("br %d", b))
	tr.Backend.Branch(b)
}

func (tr *tracer) CondBranch(c backend.Value, then backend.Block, otherwise backend.Block) {
	tr.trace = append(tr.trace, fmt.Sprintf("cond %d %d", then, otherwise))
	tr.Backend.CondBranch(c, then, otherwise)
}

func TestLoopProtocol(t *testing.T) {
	// Given
	tr := &tracer{Backend: vm.NewBackend(nil, &bytes.Buffer{})}

	// When
	if err := Generate(compile(t, "+[-]"), tr, Config{}); err != nil {
		t.Fatal(err)
	}

	// Then
	want := []string{
		// max
		"append 1", "append 2", "append 3", "enter 1", "cond 2 3", "enter 2", "enter 3",
		// main
		"append 4", "enter 4",
		// loop enter
		"append 5", "append 6", "br 5", "enter 6",
		// loop exit
		"br 5", "append 7", "enter 5", "cond 6 7", "enter 7",
	}
	if strings.Join(tr.trace, ", ") != strings.Join(want, ", ") {
		t.Errorf("unexpected trace:\n%v\nwant:\n%v", tr.trace, want)
	}
	if _, err := tr.Run(""); err != nil {
		t.Errorf("run: %v", err)
	}
}

func TestNestedLoops(t *testing.T) {
	// 3 * 4 = 12 via nested loops, then the result is printed.
	got := run(t, "+++[>++++[>+<-]<-]>>.", "", Config{})
	if !bytes.Equal(got, []byte{12}) {
		t.Errorf("got %v", got)
	}
}
