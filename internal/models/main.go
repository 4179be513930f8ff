// Package models defines the core data structures for facts and accounts,
// plus the error taxonomy shared across layers.
package models

import (
	"errors"
	"strings"
)

// Sentinel errors returned by repositories and services. Handlers map them
// to HTTP responses; no other layer touches status codes.
var (
	// ErrNotFound indicates an unknown fact id or category.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a duplicate username on registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates a missing required form field.
	ErrValidation = errors.New("required field missing")
)

// Fact is a single content record. Ids are unique across the whole catalog,
// not per category.
type Fact struct {
	// ID is the catalog-wide unique identifier of the fact.
	ID int `json:"id"`
	// Title is the short headline of the fact.
	Title string `json:"title"`
	// Text is the body of the fact.
	Text string `json:"text"`
	// Image is a URL pointing at the fact's illustration.
	Image string `json:"image"`
}

// FactPage is a fact resolved for display: the owning category and the ids
// of the neighbouring facts within that category. PrevID and NextID are nil
// at the category boundaries.
type FactPage struct {
	Fact     Fact
	Category string
	PrevID   *int
	NextID   *int
}

// Account is a registered user. Passwords are stored and compared in clear
// text; this matches the reference behavior the service reimplements and is
// called out as a known defect in DESIGN.md.
type Account struct {
	// Username is the unique, case-sensitive login name.
	Username string `json:"username"`
	// Password is the clear-text password.
	Password string `json:"password"`
}

// NormalizeCategory maps a user-supplied category name onto its catalog key:
// lower-cased, with spaces turned into underscores.
func NormalizeCategory(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
