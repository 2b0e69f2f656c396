package main

import (
	"fmt"
	"os"

	"github.com/vs-ude/brainfuck/internal/errlog"
)

// reportedError wraps an error whose details have already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

func printErrors(log *errlog.ErrorLog, lmap *errlog.LocationMap) {
	for _, e := range log.Errors {
		fmt.Fprintln(os.Stderr, errlog.ErrorToString(e, lmap))
	}
	fmt.Fprintln(os.Stderr, "ERROR")
}
