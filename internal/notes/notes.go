// Package notes implements the vault operations: creating entities from
// templates, archiving them, moving work items and posts between status
// folders, and initializing the vault layout.
//
// Every operation takes its configuration from the Service; nothing is read
// from globals. Operations are not safe against concurrent invocations on the
// same vault: prefix generation and existence checks are plain directory
// scans.
package notes

import (
	"errors"
	"time"

	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/vault"
)

var (
	// ErrExists is returned when a target path is already taken.
	ErrExists = errors.New("already exists")
	// ErrNotFound is returned when a source or lookup target is missing.
	ErrNotFound = vault.ErrNotFound
	// ErrInvalid is returned for malformed user input.
	ErrInvalid = errors.New("invalid input")
	// ErrUnknownType is returned when no template matches an entity type.
	ErrUnknownType = errors.New("unknown entity type")
)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for date variables.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRandom overrides the random source used for prefix generation.
func WithRandom(intN func(n int) int) Option {
	return func(s *Service) {
		s.gen = prefix.Generator{IntN: intN}
	}
}

// Service runs vault operations against one configuration.
type Service struct {
	cfg    *config.Config
	layout *vault.Layout
	gen    prefix.Generator
	now    func() time.Time
}

// New returns a Service for cfg.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		layout: vault.New(cfg),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
