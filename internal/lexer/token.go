package lexer

import (
	"fmt"

	"github.com/vs-ude/brainfuck/internal/errlog"
)

// TokenKind ...
type TokenKind int

const (
	// TokenForward is `>`.
	TokenForward TokenKind = 1 + iota
	// TokenBackward is `<`.
	TokenBackward
	// TokenIncrement is `+`.
	TokenIncrement
	// TokenDecrement is `-`.
	TokenDecrement
	// TokenOutput is `.`.
	TokenOutput
	// TokenInput is `,`.
	TokenInput
	// TokenLoopStart is `[`.
	TokenLoopStart
	// TokenLoopEnd is `]`.
	TokenLoopEnd
)

// Token ...
type Token struct {
	Kind     TokenKind
	Location errlog.Location
}

var commands = [256]TokenKind{
	'>': TokenForward,
	'<': TokenBackward,
	'+': TokenIncrement,
	'-': TokenDecrement,
	'.': TokenOutput,
	',': TokenInput,
	'[': TokenLoopStart,
	']': TokenLoopEnd,
}

// Byte returns the source byte of the token kind.
func (kind TokenKind) Byte() byte {
	switch kind {
	case TokenForward:
		return '>'
	case TokenBackward:
		return '<'
	case TokenIncrement:
		return '+'
	case TokenDecrement:
		return '-'
	case TokenOutput:
		return '.'
	case TokenInput:
		return ','
	case TokenLoopStart:
		return '['
	case TokenLoopEnd:
		return ']'
	}
	panic("Oooops")
}

func (kind TokenKind) String() string {
	if kind < TokenForward || kind > TokenLoopEnd {
		return fmt.Sprintf("token(%d)", int(kind))
	}
	return string(kind.Byte())
}
