package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domains/author"
	"library-api/pkg/cache"
)

const (
	authorCacheTTL = 15 * time.Minute

	uniqueViolation = "23505"
)

// postgresRepository is the concrete author.Repository over pgx.
// Hide implementation, expose interface.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the author store.
// Returns the interface so callers depend on the abstraction.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func authorCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("author:%s", id.String())
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (
			id, name, username, password_hash, born,
			book_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Username,
		a.PasswordHash,
		a.Born,
		a.BookCount,
		a.CreatedAt,
		a.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return author.ErrUsernameAlreadyExists
			}
		}
		return fmt.Errorf("create author: %w", err)
	}

	return nil
}

// FindByID follows the cache-aside pattern: redis first, then postgres
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKey(id)

	var a author.Author
	found, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && found {
		return &a, nil
	}

	query := `
		SELECT id, name, username, password_hash, born,
		       book_count, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Username,
		&a.PasswordHash,
		&a.Born,
		&a.BookCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by id: %w", err)
	}

	// Ignore cache set errors - a request must not fail because redis is down
	_ = r.cache.Set(ctx, cacheKey, &a, authorCacheTTL)

	return &a, nil
}

// FindByUsername is not cached: it only runs at login
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*author.Author, error) {
	query := `
		SELECT id, name, username, password_hash, born,
		       book_count, created_at, updated_at
		FROM authors
		WHERE username = $1
	`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID,
		&a.Name,
		&a.Username,
		&a.PasswordHash,
		&a.Born,
		&a.BookCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by username: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]author.Author, error) {
	query := `
		SELECT id, name, username, password_hash, born,
		       book_count, created_at, updated_at
		FROM authors
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Username,
			&a.PasswordHash,
			&a.Born,
			&a.BookCount,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET name = $2, username = $3, password_hash = $4, born = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Username,
		a.PasswordHash,
		a.Born,
		a.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return author.ErrUsernameAlreadyExists
			}
		}
		return fmt.Errorf("update author: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	// Stale cache entry would serve the old record for up to the TTL
	_ = r.cache.Delete(ctx, authorCacheKey(a.ID))

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Owned books cascade via the books_author_id_fkey constraint
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, authorCacheKey(id))

	return nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE username = $1)`,
		username,
	).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) ListBooks(ctx context.Context, authorID uuid.UUID) ([]author.BookRef, error) {
	query := `
		SELECT id, title, genre, published
		FROM books
		WHERE author_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list author books: %w", err)
	}
	defer rows.Close()

	books := make([]author.BookRef, 0)
	for rows.Next() {
		var b author.BookRef
		if err := rows.Scan(&b.ID, &b.Title, &b.Genre, &b.Published); err != nil {
			return nil, fmt.Errorf("scan book ref: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book refs: %w", err)
	}

	return books, nil
}
