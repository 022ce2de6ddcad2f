package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/paravault/para/internal/ui"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count"`
}

// commandError is returned by commands that failed. The process exits 1 for
// any of them; reported marks errors already written as JSON.
type commandError struct {
	code       string
	err        error
	suggestion string
	reported   bool
}

func (e *commandError) Error() string { return e.err.Error() }

func (e *commandError) Unwrap() error { return e.err }

// outputJSON writes the response as JSON to the command's stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(stdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(Response{
		OK:   true,
		Data: data,
		Meta: meta,
	})
}

// outputError outputs an error JSON response.
func outputError(code, message string, details interface{}, suggestion string) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Details:    details,
			Suggestion: suggestion,
		},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError handles an error appropriately based on output mode.
// In JSON mode the error is written immediately; in text mode it is printed
// by Execute. Either way the returned error makes the process exit 1.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), nil, suggestion)
		return &commandError{code: code, err: err, suggestion: suggestion, reported: true}
	}
	return &commandError{code: code, err: err, suggestion: suggestion}
}

// handleErrorMsg handles an error message appropriately based on output mode.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

// reportError prints an error that was not already reported. Errors that
// did not pass through handleError (flag parsing, argument counts) get
// ErrInvalidInput.
func reportError(stderr io.Writer, err error) {
	var cmdErr *commandError
	if !errors.As(err, &cmdErr) {
		cmdErr = &commandError{code: ErrInvalidInput, err: err, suggestion: "Run 'para --help' for usage"}
	}
	if cmdErr.reported {
		return
	}
	if jsonOutput {
		outputError(cmdErr.code, cmdErr.err.Error(), nil, cmdErr.suggestion)
		return
	}
	fmt.Fprintf(stderr, "Error: %s\n", cmdErr.err)
	if cmdErr.suggestion != "" {
		fmt.Fprintln(stderr, ui.Hint(cmdErr.suggestion))
	}
}
