package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domains/author"
	"library-api/pkg/jwt"
)

// bcrypt cost 12: balance between security and login latency
const bcryptCost = 12

// authorService implements author.Service
type authorService struct {
	repo       author.Repository
	jwtManager *jwt.Manager
}

// NewAuthorService creates the service instance (constructor injection)
func NewAuthorService(repo author.Repository, jwtManager *jwt.Manager) author.Service {
	return &authorService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ========================================
// SIGNUP / LOGIN
// ========================================

// CreateAuthor registers a new author
func (s *authorService) CreateAuthor(ctx context.Context, req author.CreateAuthorRequest) (*author.AuthorDTO, error) {
	// Handler already validated; double-check here so the service is safe
	// to call from other entry points
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, author.ErrUsernameAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newAuthor := &author.Author{
		ID:           uuid.New(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Born:         req.Born,
		BookCount:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newAuthor); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	dto := newAuthor.ToDTO(nil)
	return &dto, nil
}

// Login verifies credentials and issues a session token
func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (*author.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Do not reveal whether the username exists
		return nil, author.ErrInvalidCredentials
	}

	// Constant-time comparison lives inside bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, author.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(a.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	books, err := s.repo.ListBooks(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return &author.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.Expiry()),
		Author:    a.ToDTO(books),
	}, nil
}

// ========================================
// CRUD
// ========================================

// UpdateAuthor applies a partial update.
// Validation runs before any read or write, so an invalid request
// leaves the stored record untouched.
func (s *authorService) UpdateAuthor(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.AuthorDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		a.Name = req.Name
	}
	if req.Username != "" && req.Username != a.Username {
		exists, err := s.repo.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("check username exists: %w", err)
		}
		if exists {
			return nil, author.ErrUsernameAlreadyExists
		}
		a.Username = req.Username
	}
	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		a.PasswordHash = string(passwordHash)
	}
	// Born is applied only when present in the request
	if req.Born != nil {
		a.Born = req.Born
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooks(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	dto := a.ToDTO(books)
	return &dto, nil
}

// DeleteAuthor removes the author; owned books cascade at the store
func (s *authorService) DeleteAuthor(ctx context.Context, id uuid.UUID) (*author.AuthorDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	dto := a.ToDTO(books)
	return &dto, nil
}

func (s *authorService) GetAuthor(ctx context.Context, id uuid.UUID) (*author.AuthorDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	dto := a.ToDTO(books)
	return &dto, nil
}

func (s *authorService) GetAllAuthors(ctx context.Context) ([]author.AuthorDTO, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]author.AuthorDTO, 0, len(authors))
	for i := range authors {
		books, err := s.repo.ListBooks(ctx, authors[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		dtos = append(dtos, authors[i].ToDTO(books))
	}

	return dtos, nil
}
