package book

import "errors"

// Repository-level errors
var (
	ErrBookNotFound = errors.New("book not found")

	// Titles are unique per author, not globally
	ErrDuplicateTitle = errors.New("author already has a book with this title")
)

// Service-level (business logic) errors
var (
	ErrNotAuthenticated = errors.New("you must be logged in to add a book")
)
