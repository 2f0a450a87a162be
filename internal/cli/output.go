package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rgehrsitz/switchmatch/internal/runtime"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // invalid table, failed resolution
	ExitCommandError = 2 // bad arguments, unreadable files
)

// ExitError carries the exit code a command failed with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, ExitFailure when it
// carries none.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes evaluations and messages as text or JSON lines.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func (f *OutputFormatter) Evaluation(e runtime.Evaluation) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(e)
	}
	value := "<no match>"
	if e.Resolved {
		value = render(e.Value)
	}
	_, err := fmt.Fprintf(f.Writer, "%s => %s\n", render(e.Subject), value)
	return err
}

// Message writes a status line; v is encoded as the JSON payload.
func (f *OutputFormatter) Message(text string, v any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(v)
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// render prints a value as compact JSON, falling back to %v for values JSON
// cannot encode.
func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
