package llvm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/irgen"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

func generate(t *testing.T, src string) *Backend {
	t.Helper()
	p := parser.NewParser(errlog.NewErrorLog())
	prog, err := p.Parse(lexer.NewScanner(0, strings.NewReader(src)))
	if err != nil {
		t.Fatal(err)
	}
	b := NewBackend()
	if err = irgen.Generate(opt.Optimize(prog), b, irgen.Config{ModuleName: "test.bf", TapeSize: 100}); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestModuleText(t *testing.T) {
	// Given
	b := generate(t, "-[>+<,.]")

	// When
	ir := b.String()

	// Then
	for _, want := range []string{
		"; ModuleID = 'test.bf'",
		"@tape = global [100 x i8] zeroinitializer",
		"declare i32 @getchar()",
		"declare i32 @putchar(i32)",
		"define internal i32 @max(i32 %p0, i32 %p1) {",
		"icmp sgt i32 %p0, %p1",
		"define i32 @main() {",
		"alloca ptr",
		"store ptr @tape, ptr %t",
		"sub i8 %t",
		"add i8 %t",
		", 1\n",
		"getelementptr i8, ptr %t",
		", i64 -1",
		"icmp ne i8 %t",
		"call i32 @max(i32 %t",
		"trunc i32 %t",
		"sext i8 %t",
		"call i32 @putchar(i32 %t",
		"ret i32 0",
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR does not contain %q:\n%s", want, ir)
		}
	}
}

func TestEveryBlockIsTerminated(t *testing.T) {
	b := generate(t, "+[[-]>[+<]]")
	for _, f := range b.Funcs() {
		for _, blk := range b.Func(f).Blocks {
			lines := strings.Split(strings.TrimSpace(b.bodies[blk].String()), "\n")
			last := strings.TrimSpace(lines[len(lines)-1])
			if !strings.HasPrefix(last, "br ") && !strings.HasPrefix(last, "ret ") {
				t.Errorf("block b%d ends with %q", blk, last)
			}
		}
	}
}

func TestRunWritesFile(t *testing.T) {
	b := generate(t, "+.")
	out := filepath.Join(t.TempDir(), "out.ll")
	if _, err := b.Run(out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != b.String() {
		t.Errorf("file content differs from the module text")
	}
}

func TestModuleNameIsEscaped(t *testing.T) {
	// Given
	b := NewBackend()
	b.Module("dir/\"odd\\name'.bf\n")

	// When
	ir := b.String()

	// Then
	want := "; ModuleID = 'dir/\\22odd\\5Cname\\27.bf\\0A'\nsource_filename = \"dir/\\22odd\\5Cname\\27.bf\\0A\"\n"
	if !strings.HasPrefix(ir, want) {
		t.Errorf("unexpected module header:\n%s", ir)
	}
}
