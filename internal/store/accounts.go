package store

import (
	"context"
	"sync"

	"github.com/akulikov/facthub/internal/models"
)

// Accounts is an in-memory account repository keyed by exact username.
type Accounts struct {
	mu     sync.Mutex
	byName map[string]models.Account
}

// NewAccounts returns an empty account repository.
func NewAccounts() *Accounts {
	return &Accounts{byName: make(map[string]models.Account)}
}

// Register creates a new account. Usernames are matched case-sensitively;
// a taken name yields models.ErrAlreadyExists. Accounts are never deleted.
func (a *Accounts) Register(_ context.Context, username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byName[username]; ok {
		return models.ErrAlreadyExists
	}
	a.byName[username] = models.Account{Username: username, Password: password}
	return nil
}

// Authenticate checks the username/password pair by plain equality and
// returns models.ErrInvalidCredentials on any mismatch.
func (a *Accounts) Authenticate(_ context.Context, username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.byName[username]
	if !ok || acc.Password != password {
		return models.ErrInvalidCredentials
	}
	return nil
}
