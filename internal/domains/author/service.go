package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic layer contract
type Service interface {
	// CreateAuthor registers a new author (signup).
	// The returned DTO never carries password material.
	CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*AuthorDTO, error)

	// Login verifies credentials and issues a session token
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// UpdateAuthor applies a partial update; born only when present
	UpdateAuthor(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*AuthorDTO, error)

	// DeleteAuthor removes the author and returns its last state
	DeleteAuthor(ctx context.Context, id uuid.UUID) (*AuthorDTO, error)

	// GetAuthor resolves one author with its book references
	GetAuthor(ctx context.Context, id uuid.UUID) (*AuthorDTO, error)

	// GetAllAuthors resolves every author with book references
	GetAllAuthors(ctx context.Context) ([]AuthorDTO, error)
}
