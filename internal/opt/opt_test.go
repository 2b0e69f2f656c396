package opt

import (
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/parser"
)

func parse(t *testing.T, src string) *parser.Program {
	t.Helper()
	p := parser.NewParser(errlog.NewErrorLog())
	prog, err := p.Parse(lexer.NewScanner(0, strings.NewReader(src)))
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	return prog
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"+++--", "+1"},
		{"<<<>", "<2"},
		{"+-", "+0"},
		{"><", ">0"},
		{"..,,", ". . , ,"},
		{"+>+>", "+1 >1 +1 >1"},
		{"++[--]++", "+2 [ -2 ] +2"},
		{"+[]+", "+1 [ ] +1"},
		{"[+[++]+]", "[ +1 [ +2 ] +1 ]"},
		{"++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]", "+8 [ >1 +4 [ >1 +2 >1 +3 >1 +3 >1 +1 <4 -1 ] >1 +1 >1 +1 >1 -1 >2 +1 [ <1 ] <1 -1 ]"},
	}
	for _, tt := range tests {
		got := Optimize(parse(t, tt.src)).String()
		if got != tt.want {
			t.Errorf("Optimize(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestOptimizeSingleInstruction(t *testing.T) {
	prog := Optimize(parse(t, "+++--"))
	if len(prog.Children) != 1 {
		t.Fatalf("expected one node, got %d", len(prog.Children))
	}
	n := prog.Children[0].(*parser.InstructionNode)
	if n.Instruction != (parser.Instruction{Symbol: parser.SymbolUpdate, Parameter: 1}) {
		t.Errorf("unexpected instruction %+v", n.Instruction)
	}

	prog = Optimize(parse(t, "<<<>"))
	n = prog.Children[0].(*parser.InstructionNode)
	if len(prog.Children) != 1 || n.Instruction != (parser.Instruction{Symbol: parser.SymbolMove, Parameter: -2}) {
		t.Errorf("unexpected instruction %+v", n.Instruction)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	srcs := []string{"+++--", "[->+<]", ">>>[-<<+>>]<<.", "+-+-[[]]..,"}
	for _, src := range srcs {
		once := Optimize(parse(t, src)).String()
		twice := Optimize(Optimize(parse(t, src))).String()
		if once != twice {
			t.Errorf("Optimize(%q) not idempotent: %q then %q", src, once, twice)
		}
	}
}

func TestOptimizeNeverGrows(t *testing.T) {
	tests := []struct {
		src   string
		equal bool
	}{
		{"+>-<.,", true},
		{"[+]>[-]", true},
		{"++", false},
		{"[>>]", false},
		{"+[+]+", true},
	}
	for _, tt := range tests {
		raw := parser.Count(parse(t, tt.src).Children)
		opt := parser.Count(Optimize(parse(t, tt.src)).Children)
		if opt > raw {
			t.Errorf("Optimize(%q) grew from %d to %d", tt.src, raw, opt)
		}
		if (opt == raw) != tt.equal {
			t.Errorf("Optimize(%q): raw %d, optimized %d", tt.src, raw, opt)
		}
	}
}
