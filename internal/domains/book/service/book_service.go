package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-api/internal/domains/author"
	"library-api/internal/domains/book"
	"library-api/internal/events"
	"library-api/pkg/logger"
)

// bookService implements book.Service
type bookService struct {
	repo       book.Repository
	authorRepo author.Repository // Cross-domain: ownership checks
	publisher  events.Publisher
}

// NewBookService creates the service instance
func NewBookService(repo book.Repository, authorRepo author.Repository, publisher events.Publisher) book.Service {
	return &bookService{
		repo:       repo,
		authorRepo: authorRepo,
		publisher:  publisher,
	}
}

// AddBook creates a book owned by the authenticated author.
// The insert and the book_count increment are one transaction at the
// repository; the newBook event fires only after the commit.
func (s *bookService) AddBook(ctx context.Context, authorID uuid.UUID, req book.AddBookRequest) (*book.BookDTO, error) {
	if authorID == uuid.Nil {
		return nil, book.ErrNotAuthenticated
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The token may outlive the account it was issued for
	owner, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	newBook := &book.Book{
		ID:        uuid.New(),
		Title:     req.Title,
		Genre:     req.Genre,
		Published: req.Published,
		AuthorID:  owner.ID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateWithCountUpdate(ctx, newBook); err != nil {
		return nil, err
	}

	// Best effort: a lost notification does not fail the write
	if err := s.publisher.PublishNewBook(ctx, events.NewBookEvent{
		BookID:     newBook.ID,
		Title:      newBook.Title,
		Genre:      newBook.Genre,
		Published:  newBook.Published,
		AuthorID:   owner.ID,
		AuthorName: owner.Name,
		CreatedAt:  newBook.CreatedAt,
	}); err != nil {
		logger.Error("publish new book event", err)
	}

	dto := book.BookDTO{
		ID:        newBook.ID,
		Title:     newBook.Title,
		Genre:     newBook.Genre,
		Published: newBook.Published,
		Author: book.AuthorRef{
			ID:        owner.ID,
			Name:      owner.Name,
			Username:  owner.Username,
			Born:      owner.Born,
			BookCount: owner.BookCount + 1,
		},
		CreatedAt: newBook.CreatedAt,
	}
	return &dto, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*book.BookDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := b.ToDTO()
	return &dto, nil
}

func (s *bookService) GetAllBooks(ctx context.Context) ([]book.BookDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}

	return toDTOs(rows), nil
}

func (s *bookService) GetBooksByGenre(ctx context.Context, genre string) ([]book.BookDTO, error) {
	rows, err := s.repo.FindByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("get books by genre: %w", err)
	}

	return toDTOs(rows), nil
}

func toDTOs(rows []book.BookWithAuthor) []book.BookDTO {
	dtos := make([]book.BookDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, rows[i].ToDTO())
	}
	return dtos
}
