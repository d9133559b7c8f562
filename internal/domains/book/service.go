package book

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic layer contract
type Service interface {
	// AddBook creates a book owned by the authenticated author.
	// authorID is the identity resolved by the context builder;
	// uuid.Nil means the request carried no valid token.
	AddBook(ctx context.Context, authorID uuid.UUID, req AddBookRequest) (*BookDTO, error)

	// GetBook resolves one book with its author
	GetBook(ctx context.Context, id uuid.UUID) (*BookDTO, error)

	// GetAllBooks returns every book with its author
	GetAllBooks(ctx context.Context) ([]BookDTO, error)

	// GetBooksByGenre filters by exact genre match
	GetBooksByGenre(ctx context.Context, genre string) ([]BookDTO, error)
}
