package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the contract for the credential store.
// Interface-first so the postgres implementation can be swapped or
// mocked in unit tests.
type Repository interface {
	// Create persists a new author.
	// Returns ErrUsernameAlreadyExists on a unique violation.
	Create(ctx context.Context, a *Author) error

	// FindByID looks up an author by id.
	// Returns ErrAuthorNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByUsername looks up an author by username (used for login).
	// Returns ErrAuthorNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*Author, error)

	// FindAll returns every author, ordered by creation time
	FindAll(ctx context.Context) ([]Author, error)

	// Update replaces the mutable fields of an author.
	// Returns ErrAuthorNotFound when absent,
	// ErrUsernameAlreadyExists when the new username collides.
	Update(ctx context.Context, a *Author) error

	// Delete removes an author irreversibly; owned books cascade.
	// Returns ErrAuthorNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUsername reports whether a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ListBooks returns the author's owned book references in insertion order
	ListBooks(ctx context.Context, authorID uuid.UUID) ([]BookRef, error)
}
