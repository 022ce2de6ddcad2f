// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"io/fs"

	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/notes"
	"github.com/paravault/para/internal/paths"
	"github.com/paravault/para/internal/prefix"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigNotFound = "CONFIG_NOT_FOUND"
	ErrConfigInvalid  = "CONFIG_INVALID"

	// Template errors
	ErrTypeNotFound = "TYPE_NOT_FOUND"

	// File errors
	ErrFileNotFound     = "FILE_NOT_FOUND"
	ErrFileExists       = "FILE_EXISTS"
	ErrFileWriteError   = "FILE_WRITE_ERROR"
	ErrFileOutsideVault = "FILE_OUTSIDE_VAULT"

	// Prefix errors
	ErrPrefixExhausted = "PREFIX_EXHAUSTED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// classify maps a domain error to its error code and a suggestion for the
// user.
func classify(err error) (string, string) {
	var notFound *config.NotFoundError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &notFound):
		return ErrConfigNotFound, "Create para.yaml next to the para binary or in the current directory, or pass --config"
	case errors.Is(err, notes.ErrUnknownType):
		return ErrTypeNotFound, "Add a template with that name under 'templates' in para.yaml"
	case errors.Is(err, notes.ErrExists):
		return ErrFileExists, "Choose a different title or prefix, or move the existing entry first"
	case errors.Is(err, notes.ErrNotFound):
		return ErrFileNotFound, "Run 'para list projects' or 'para list areas' to see available prefixes"
	case errors.Is(err, prefix.ErrExhausted):
		return ErrPrefixExhausted, "Archive unused entries to free up prefixes"
	case errors.Is(err, paths.ErrOutsideVault):
		return ErrFileOutsideVault, ""
	case errors.Is(err, notes.ErrInvalid), errors.Is(err, prefix.ErrMalformed):
		return ErrInvalidInput, ""
	case errors.As(err, &pathErr):
		return ErrFileWriteError, ""
	}
	return ErrInternal, ""
}

// handleDomainError reports err with the code classify assigns it.
func handleDomainError(err error) error {
	code, suggestion := classify(err)
	return handleError(code, err, suggestion)
}
