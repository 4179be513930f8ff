package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akulikov/facthub/internal/models"
)

type mockAccountRepo struct {
	RegisterFunc     func(ctx context.Context, username, password string) error
	AuthenticateFunc func(ctx context.Context, username, password string) error
}

func (m *mockAccountRepo) Register(ctx context.Context, username, password string) error {
	return m.RegisterFunc(ctx, username, password)
}
func (m *mockAccountRepo) Authenticate(ctx context.Context, username, password string) error {
	return m.AuthenticateFunc(ctx, username, password)
}

func TestRegister_Success(t *testing.T) {
	called := false
	repo := &mockAccountRepo{
		RegisterFunc: func(ctx context.Context, username, password string) error {
			called = true
			if username != "carol" {
				t.Errorf("Register received username = %q; want %q", username, "carol")
			}
			return nil
		},
	}
	svc := NewAccountService(repo)

	if err := svc.Register(context.Background(), "carol", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !called {
		t.Fatal("expected Register to be called on repo")
	}
}

func TestRegister_AlreadyExists(t *testing.T) {
	repo := &mockAccountRepo{
		RegisterFunc: func(ctx context.Context, username, password string) error {
			return models.ErrAlreadyExists
		},
	}
	svc := NewAccountService(repo)

	if err := svc.Register(context.Background(), "bob", "x"); !errors.Is(err, models.ErrAlreadyExists) {
		t.Fatalf("Register error = %v; want ErrAlreadyExists", err)
	}
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	repo := &mockAccountRepo{
		AuthenticateFunc: func(ctx context.Context, username, password string) error {
			return models.ErrInvalidCredentials
		},
	}
	svc := NewAccountService(repo)

	if err := svc.Authenticate(context.Background(), "bob", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("Authenticate error = %v; want ErrInvalidCredentials", err)
	}
}
