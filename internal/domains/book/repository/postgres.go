package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domains/author"
	"library-api/internal/domains/book"
	"library-api/pkg/cache"
	"library-api/pkg/database"
)

const uniqueViolation = "23505"

// postgresRepository is the concrete book.Repository over pgx
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the book store
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// CreateWithCountUpdate runs the insert and the denormalized counter
// update as one logical unit. Either both land or neither does; a
// partial write can never leave book_count out of sync.
func (r *postgresRepository) CreateWithCountUpdate(ctx context.Context, b *book.Book) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO books (id, title, genre, published, author_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, insert,
			b.ID, b.Title, b.Genre, b.Published, b.AuthorID, b.CreatedAt,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return book.ErrDuplicateTitle
			}
			return fmt.Errorf("insert book: %w", err)
		}

		// In-place increment serializes concurrent adds on the author row
		tag, err := tx.Exec(ctx,
			`UPDATE authors SET book_count = book_count + 1, updated_at = NOW() WHERE id = $1`,
			b.AuthorID,
		)
		if err != nil {
			return fmt.Errorf("increment book count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return author.ErrAuthorNotFound
		}

		return nil
	})

	if err != nil {
		return err
	}

	// The cached author still carries the old book_count
	_ = r.cache.Delete(ctx, fmt.Sprintf("author:%s", b.AuthorID.String()))

	return nil
}

const selectWithAuthor = `
	SELECT b.id, b.title, b.genre, b.published, b.author_id, b.created_at,
	       a.id, a.name, a.username, a.born, a.book_count
	FROM books b
	JOIN authors a ON a.id = b.author_id
`

func scanBookWithAuthor(row pgx.Row) (*book.BookWithAuthor, error) {
	var b book.BookWithAuthor
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Genre,
		&b.Published,
		&b.AuthorID,
		&b.CreatedAt,
		&b.Author.ID,
		&b.Author.Name,
		&b.Author.Username,
		&b.Author.Born,
		&b.Author.BookCount,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.BookWithAuthor, error) {
	row := r.pool.QueryRow(ctx, selectWithAuthor+` WHERE b.id = $1`, id)

	b, err := scanBookWithAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]book.BookWithAuthor, error) {
	return r.query(ctx, selectWithAuthor+` ORDER BY b.created_at ASC`)
}

func (r *postgresRepository) FindByGenre(ctx context.Context, genre string) ([]book.BookWithAuthor, error) {
	return r.query(ctx, selectWithAuthor+` WHERE b.genre = $1 ORDER BY b.created_at ASC`, genre)
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...interface{}) ([]book.BookWithAuthor, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.BookWithAuthor, 0)
	for rows.Next() {
		b, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}
