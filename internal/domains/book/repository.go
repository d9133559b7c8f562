package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the contract for the relationship store
type Repository interface {
	// CreateWithCountUpdate inserts the book AND increments the owning
	// author's book_count in one transaction. The increment happens at
	// the store (book_count = book_count + 1), so concurrent adds for
	// the same author never lose updates.
	// Returns ErrDuplicateTitle when the author already has the title.
	CreateWithCountUpdate(ctx context.Context, b *Book) error

	// FindByID resolves one book with its author.
	// Returns ErrBookNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*BookWithAuthor, error)

	// FindAll returns every book with its author, ordered by creation time
	FindAll(ctx context.Context) ([]BookWithAuthor, error)

	// FindByGenre filters books by exact genre match
	FindByGenre(ctx context.Context, genre string) ([]BookWithAuthor, error)
}
