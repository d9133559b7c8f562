package book

import (
	"time"

	"github.com/google/uuid"
)

// Book is the domain entity, mapped 1:1 to the books table.
// A book holds a non-owning reference to exactly one author.
type Book struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Genre     string    `db:"genre" json:"genre"`
	Published int       `db:"published" json:"published"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuthorRef is the resolved author attached to read results
type AuthorRef struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	Born      *int      `db:"born" json:"born,omitempty"`
	BookCount int       `db:"book_count" json:"book_count"`
}

// BookWithAuthor is a read-model row: the book joined with its author
type BookWithAuthor struct {
	Book
	Author AuthorRef
}
