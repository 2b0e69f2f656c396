package errlog

import (
	"fmt"
)

// ErrorLog collects the errors reported while compiling one source unit.
type ErrorLog struct {
	Errors []*Error
}

// ErrorCode ...
type ErrorCode int

const (
	// ErrorUnmatchedLoopEnd is a `]` without an open loop.
	ErrorUnmatchedLoopEnd ErrorCode = 1 + iota
	// ErrorUnterminatedLoop is a `[` that is still open at the end of the input.
	ErrorUnterminatedLoop
	// ErrorUnbalancedLoops is reported by the code generator if the loop stack is not empty after generation.
	ErrorUnbalancedLoops
)

// Error is a syntax or structural error with a source location.
type Error struct {
	code     ErrorCode
	location LocationRange
	args     []string
}

// NewError ...
func NewError(code ErrorCode, loc LocationRange, args ...string) *Error {
	return &Error{code: code, location: loc, args: args}
}

// NewErrorLog ...
func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

// AddError ...
func (log *ErrorLog) AddError(code ErrorCode, loc LocationRange, args ...string) *Error {
	err := NewError(code, loc, args...)
	log.Errors = append(log.Errors, err)
	return err
}

// ToString ...
func (log *ErrorLog) ToString(l *LocationMap) string {
	str := ""
	for _, e := range log.Errors {
		str += ErrorToString(e, l) + "\n"
	}
	return str
}

// Error ...
func (e *Error) Error() string {
	return e.ToString()
}

// Code ...
func (e *Error) Code() ErrorCode {
	return e.code
}

// ToString ...
func (e *Error) ToString() string {
	switch e.code {
	case ErrorUnmatchedLoopEnd:
		return "Unexpected `]` without a matching `[`"
	case ErrorUnterminatedLoop:
		return "Loop started with `[` is never closed"
	case ErrorUnbalancedLoops:
		return "Code generation ended with " + e.args[0] + " open loop(s)"
	}
	panic("Should not happen")
}

// Location ...
func (e *Error) Location() LocationRange {
	return e.location
}

// ErrorToString ...
func ErrorToString(e *Error, l *LocationMap) string {
	loc := e.Location()
	file, line, pos := l.Decode(loc.From)
	return fmt.Sprintf("%v %v:%v: %v", file.Name, line, pos, e.ToString())
}

// SourceError reports a source file that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot read source file %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
