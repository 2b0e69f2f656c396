package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/lexer"
)

func parse(t *testing.T, src string) (*Program, *errlog.ErrorLog, *errlog.LocationMap, error) {
	t.Helper()
	lmap := errlog.NewLocationMap()
	file := lmap.AddFile(errlog.NewSourceFile("test.bf"))
	log := errlog.NewErrorLog()
	p := NewParser(log)
	prog, err := p.Parse(lexer.NewScanner(file, strings.NewReader(src)))
	return prog, log, lmap, err
}

func TestParser(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"+++--", "+1 +1 +1 -1 -1"},
		{"<<<>", "<1 <1 <1 >1"},
		{"[]", "[ ]"},
		{"[[]]", "[ [ ] ]"},
		{",[.,]", ", [ . , ]"},
		{"+[->+<]>.", "+1 [ -1 >1 +1 <1 ] >1 ."},
		{"a+b[c-d]e", "+1 [ -1 ]"},
	}
	for _, tt := range tests {
		prog, log, _, err := parse(t, tt.src)
		if err != nil {
			t.Errorf("parse(%q) failed: %v", tt.src, err)
			continue
		}
		if got := prog.String(); got != tt.want {
			t.Errorf("parse(%q) = %q, want %q", tt.src, got, tt.want)
		}
		if len(log.Errors) != 0 {
			t.Errorf("parse(%q) logged errors", tt.src)
		}
	}
}

func TestParserRejectsUnbalancedLoops(t *testing.T) {
	tests := []struct {
		src  string
		code errlog.ErrorCode
		line int
		pos  int
	}{
		{"[", errlog.ErrorUnterminatedLoop, 1, 1},
		{"]", errlog.ErrorUnmatchedLoopEnd, 1, 1},
		{"+[\n [-]", errlog.ErrorUnterminatedLoop, 1, 2},
		{"[[]\n[", errlog.ErrorUnterminatedLoop, 2, 1},
		{"[]]", errlog.ErrorUnmatchedLoopEnd, 1, 3},
	}
	for _, tt := range tests {
		// Given
		prog, log, lmap, err := parse(t, tt.src)

		// Then
		var serr *errlog.Error
		if !errors.As(err, &serr) {
			t.Errorf("parse(%q): expected *errlog.Error, got %v", tt.src, err)
			continue
		}
		if prog != nil {
			t.Errorf("parse(%q) returned a program", tt.src)
		}
		if serr.Code() != tt.code {
			t.Errorf("parse(%q) code = %v, want %v", tt.src, serr.Code(), tt.code)
		}
		if _, line, pos := lmap.Decode(serr.Location().From); line != tt.line || pos != tt.pos {
			t.Errorf("parse(%q) error at %d:%d, want %d:%d", tt.src, line, pos, tt.line, tt.pos)
		}
		if len(log.Errors) != 1 || log.Errors[0] != serr {
			t.Errorf("parse(%q) did not log the error", tt.src)
		}
	}
}

func TestParserBlockLocation(t *testing.T) {
	prog, _, lmap, err := parse(t, "+\n[-\n]")
	if err != nil {
		t.Fatal(err)
	}
	block, ok := prog.Children[1].(*BlockNode)
	if !ok {
		t.Fatalf("expected a block, got %T", prog.Children[1])
	}
	_, fromLine, fromPos := lmap.Decode(block.Location().From)
	_, toLine, toPos := lmap.Decode(block.Location().To)
	if fromLine != 2 || fromPos != 1 || toLine != 3 || toPos != 1 {
		t.Errorf("block spans %d:%d-%d:%d", fromLine, fromPos, toLine, toPos)
	}
}

func TestCount(t *testing.T) {
	prog, _, _, err := parse(t, "++[>+[-]<]..")
	if err != nil {
		t.Fatal(err)
	}
	if n := Count(prog.Children); n != 8 {
		t.Errorf("Count = %d, want 8", n)
	}
}
