package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akulikov/facthub/internal/models"
)

// PostgresAccountRepository implements account operations using a PostgreSQL
// database. Passwords are stored and compared in clear text, mirroring the
// in-memory store; see DESIGN.md.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a PostgresAccountRepository with the
// given database connection.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// Register inserts a new account. A taken username yields
// models.ErrAlreadyExists.
func (r *PostgresAccountRepository) Register(ctx context.Context, username, password string) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO accounts (username, password) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		username, password,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	if affected == 0 {
		return models.ErrAlreadyExists
	}
	return nil
}

// Authenticate checks the username/password pair by plain equality.
func (r *PostgresAccountRepository) Authenticate(ctx context.Context, username, password string) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 AND password = $2)`,
		username, password,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("select account: %w", err)
	}
	if !exists {
		return models.ErrInvalidCredentials
	}
	return nil
}
