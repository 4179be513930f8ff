// Package db bootstraps the optional PostgreSQL backend.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// pos records insertion order; per-category fact order and category
// iteration order are both derived from it.
const schema = `
CREATE TABLE IF NOT EXISTS facts (
    id INTEGER PRIMARY KEY,
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    text TEXT NOT NULL,
    image TEXT NOT NULL,
    pos BIGSERIAL
);

CREATE INDEX IF NOT EXISTS facts_category_idx ON facts (category);

CREATE TABLE IF NOT EXISTS accounts (
    username TEXT PRIMARY KEY,
    password TEXT NOT NULL
);
`

// InitPostgres opens the PostgreSQL database behind dsn, verifies the
// connection, and applies the schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
