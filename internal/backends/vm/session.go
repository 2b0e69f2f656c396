package vm

import (
	"bufio"
	"io"
)

// Session keeps the tape and the data pointer alive across several programs.
// Each program compiled with a backend from NewBackend continues where the previous one stopped.
type Session struct {
	tape   []byte
	cursor int
	in     *bufio.Reader
	out    io.Writer
}

// NewSession creates a session with a zeroed tape of the given size.
func NewSession(size int, in io.Reader, out io.Writer) *Session {
	s := &Session{tape: make([]byte, size), out: out}
	if in != nil {
		s.in = bufio.NewReader(in)
	}
	return s
}

// NewBackend returns a backend whose tape is the session tape.
func (s *Session) NewBackend() *Backend {
	return &Backend{session: s, in: s.in, out: bufio.NewWriter(s.out)}
}

// attach returns the session tape and the current data pointer.
// If the program asks for a different tape size, the session starts over with a new tape.
func (s *Session) attach(size int) ([]byte, int) {
	if len(s.tape) != size {
		s.tape = make([]byte, size)
		s.cursor = 0
	}
	return s.tape, s.cursor
}

// Cursor is the position of the data pointer after the last program.
func (s *Session) Cursor() int {
	return s.cursor
}

// Cell returns the content of the cell at index i.
func (s *Session) Cell(i int) byte {
	return s.tape[i]
}

// Reset clears the tape and moves the data pointer to the first cell.
func (s *Session) Reset() {
	for i := range s.tape {
		s.tape[i] = 0
	}
	s.cursor = 0
}
