package parser

import (
	"io"

	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/lexer"
)

// Parser ...
type Parser struct {
	s   *lexer.Scanner
	log *errlog.ErrorLog
	// One chain per open loop. chains[0] is the top level.
	chains [][]Node
	// Location of the `[` that opened each chain above the top level.
	starts []errlog.Location
}

// NewParser ...
func NewParser(log *errlog.ErrorLog) *Parser {
	return &Parser{log: log}
}

// Parse reads all tokens from s and returns the AST.
// Unbalanced loops are reported as *errlog.Error and added to the error log.
func (p *Parser) Parse(s *lexer.Scanner) (*Program, error) {
	p.s = s
	p.chains = [][]Node{nil}
	p.starts = nil
	for {
		t, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err = p.parseToken(t); err != nil {
			return nil, err
		}
	}
	if len(p.starts) != 0 {
		return nil, p.log.AddError(errlog.ErrorUnterminatedLoop, p.starts[len(p.starts)-1].Range())
	}
	return &Program{File: s.File(), Children: p.chains[0]}, nil
}

func (p *Parser) parseToken(t lexer.Token) error {
	loc := t.Location.Range()
	switch t.Kind {
	case lexer.TokenIncrement:
		p.append(NewInstructionNode(SymbolUpdate, 1, loc))
	case lexer.TokenDecrement:
		p.append(NewInstructionNode(SymbolUpdate, -1, loc))
	case lexer.TokenForward:
		p.append(NewInstructionNode(SymbolMove, 1, loc))
	case lexer.TokenBackward:
		p.append(NewInstructionNode(SymbolMove, -1, loc))
	case lexer.TokenInput:
		p.append(NewInstructionNode(SymbolInput, 0, loc))
	case lexer.TokenOutput:
		p.append(NewInstructionNode(SymbolOutput, 0, loc))
	case lexer.TokenLoopStart:
		p.chains = append(p.chains, nil)
		p.starts = append(p.starts, t.Location)
	case lexer.TokenLoopEnd:
		if len(p.starts) == 0 {
			return p.log.AddError(errlog.ErrorUnmatchedLoopEnd, loc)
		}
		top := len(p.chains) - 1
		body := p.chains[top]
		start := p.starts[len(p.starts)-1]
		p.chains = p.chains[:top]
		p.starts = p.starts[:len(p.starts)-1]
		p.append(NewBlockNode(body, errlog.LocationRange{From: start, To: t.Location}))
	default:
		panic("Oooops")
	}
	return nil
}

func (p *Parser) append(n Node) {
	top := len(p.chains) - 1
	p.chains[top] = append(p.chains[top], n)
}
