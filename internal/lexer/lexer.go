package lexer

import (
	"bufio"
	"io"

	"github.com/vs-ude/brainfuck/internal/errlog"
)

// Scanner turns a byte stream into command tokens.
// Bytes which are not one of the eight commands are discarded.
type Scanner struct {
	r      *bufio.Reader
	file   int
	path   string
	line   int
	pos    int
	marker string
	err    error
}

// Option configures a Scanner.
type Option func(s *Scanner)

// WithCommentMarker enables comment mode. Everything from marker through the end of the line is skipped.
// An empty marker disables comment mode.
func WithCommentMarker(marker string) Option {
	return func(s *Scanner) {
		s.marker = marker
	}
}

// WithPath names the source in I/O errors.
func WithPath(path string) Option {
	return func(s *Scanner) {
		s.path = path
	}
}

// NewScanner ...
func NewScanner(file int, r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{r: bufio.NewReader(r), file: file, line: 1}
	for _, o := range opts {
		o(s)
	}
	return s
}

// File is the index of the source in the LocationMap.
func (s *Scanner) File() int {
	return s.file
}

// Location returns the location of the byte read last.
func (s *Scanner) Location() errlog.Location {
	return errlog.EncodeLocation(s.file, s.line, s.pos)
}

// Next returns the next command token.
// It returns io.EOF at the end of the input and a *errlog.SourceError if the input cannot be read.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	for {
		if s.marker != "" && s.atMarker() {
			if err := s.skipLine(); err != nil {
				return Token{}, s.fail(err)
			}
			continue
		}
		c, err := s.readByte()
		if err != nil {
			return Token{}, s.fail(err)
		}
		if kind := commands[c]; kind != 0 {
			return Token{Kind: kind, Location: s.Location()}, nil
		}
	}
}

func (s *Scanner) readByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		s.line++
		s.pos = 0
	} else {
		s.pos++
	}
	return c, nil
}

func (s *Scanner) atMarker() bool {
	b, _ := s.r.Peek(len(s.marker))
	return string(b) == s.marker
}

func (s *Scanner) skipLine() error {
	for {
		c, err := s.readByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

func (s *Scanner) fail(err error) error {
	if err != io.EOF {
		err = &errlog.SourceError{Path: s.path, Err: err}
	}
	s.err = err
	return err
}
