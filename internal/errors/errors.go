// Package errors formats command failures for the terminal.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/Tholomir/ChronoRex/internal/logger"
)

// HintError carries a follow-up suggestion printed under the error message.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string {
	return e.Err.Error()
}

func (e *HintError) Unwrap() error {
	return e.Err
}

// WithHint attaches a suggestion to err. A nil err stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// Format renders err with the "Error: " prefix, followed by any hint on its own line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	var hinted *HintError
	if errors.As(err, &hinted) && hinted.Hint != "" {
		msg += "\nHint: " + hinted.Hint
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with code 1. It does nothing for a nil err.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
