package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/vs-ude/brainfuck/internal/backends/vm"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/irgen"
	"github.com/vs-ude/brainfuck/internal/lexer"
	"github.com/vs-ude/brainfuck/internal/opt"
	"github.com/vs-ude/brainfuck/internal/parser"
)

const (
	promptMain = "bf> "
	promptCont = "... "
)

const replHelp = `Every line is run on the same tape.
  :tape    show the cells around the data pointer
  :reset   clear the tape
  :quit    leave
`

// replSession compiles lines of code and runs them on one tape.
type replSession struct {
	session *vm.Session
	lmap    *errlog.LocationMap
	opts    []lexer.Option
	lines   int
}

func newReplSession(in io.Reader, out io.Writer) *replSession {
	var opts []lexer.Option
	if flagComments {
		opts = append(opts, lexer.WithCommentMarker(flagCommentMarker))
	}
	return &replSession{
		session: vm.NewSession(flagTapeSize, in, out),
		lmap:    errlog.NewLocationMap(),
		opts:    opts,
	}
}

func (r *replSession) parse(code string) (*parser.Program, *errlog.ErrorLog, error) {
	r.lines++
	file := r.lmap.AddFile(errlog.NewSourceFile(fmt.Sprintf("<repl %d>", r.lines)))
	log := errlog.NewErrorLog()
	p := parser.NewParser(log)
	prog, err := p.Parse(lexer.NewScanner(file, strings.NewReader(code), r.opts...))
	return prog, log, err
}

// eval runs code. Syntax errors are returned and leave the tape untouched.
func (r *replSession) eval(code string) error {
	prog, log, err := r.parse(code)
	if err != nil {
		if len(log.Errors) != 0 {
			return errors.New(strings.TrimSpace(log.ToString(r.lmap)))
		}
		return err
	}
	b := r.session.NewBackend()
	if err = irgen.Generate(opt.Optimize(prog), b, irgen.Config{ModuleName: "repl", TapeSize: flagTapeSize}); err != nil {
		return err
	}
	_, err = b.Run("")
	return err
}

// tape renders the cells around the data pointer. The current cell is put in brackets.
func (r *replSession) tape() string {
	cursor := r.session.Cursor()
	var parts []string
	for i := cursor - 4; i <= cursor+4; i++ {
		if i < 0 || i >= flagTapeSize {
			continue
		}
		if i == cursor {
			parts = append(parts, fmt.Sprintf("[%d]", r.session.Cell(i)))
		} else {
			parts = append(parts, fmt.Sprint(r.session.Cell(i)))
		}
	}
	return fmt.Sprintf("ptr=%d: %s", cursor, strings.Join(parts, " "))
}

// readBalanced keeps prompting until all loops opened in the input are closed.
func (r *replSession) readBalanced(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if strings.HasPrefix(strings.TrimSpace(b.String()), ":") {
			return b.String(), nil
		}
		if _, _, err = r.parse(b.String()); !isIncomplete(err) {
			return b.String(), nil
		}
	}
}

func repl() error {
	if flagTapeSize <= 0 {
		return fmt.Errorf("invalid tape size %d", flagTapeSize)
	}
	fmt.Print(replHelp)
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	r := newReplSession(os.Stdin, os.Stdout)
	for {
		code, err := r.readBalanced(ln)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return nil
		case ":reset":
			r.session.Reset()
			continue
		case ":tape":
			fmt.Println(r.tape())
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err = r.eval(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
