package service

import (
	"context"
)

// AccountRepository defines the persistence operations required by the
// account service.
type AccountRepository interface {
	// Register creates a new account; a taken username yields
	// models.ErrAlreadyExists.
	Register(ctx context.Context, username, password string) error
	// Authenticate checks a username/password pair; any mismatch yields
	// models.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) error
}

// Accounts implements registration and authentication by delegating to an
// AccountRepository.
type Accounts struct {
	repo AccountRepository
}

// NewAccountService constructs an Accounts service using the provided
// repository.
func NewAccountService(repo AccountRepository) *Accounts {
	return &Accounts{repo: repo}
}

// Register creates a new account.
func (s *Accounts) Register(ctx context.Context, username, password string) error {
	return s.repo.Register(ctx, username, password)
}

// Authenticate checks the given credentials.
func (s *Accounts) Authenticate(ctx context.Context, username, password string) error {
	return s.repo.Authenticate(ctx, username, password)
}
