package main

import "fmt"

// Exit codes
const (
	ExitSuccess     = 0 // Success, possibly with warnings
	ExitError       = 1 // General error (invalid arguments, unreadable input, unwritable output)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config file)
	ExitDataError   = 3 // Data error (inputs given but nothing could be converted)
)

// exitError carries a process exit code up through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, format string, args ...interface{}) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}
