package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the domain entity, mapped 1:1 to the authors table.
// An author is also the principal authenticated at login.
type Author struct {
	// Identity
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Username string    `db:"username" json:"username"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	Born *int `db:"born" json:"born,omitempty"`

	// Denormalized counter, maintained inside the add-book transaction
	BookCount int `db:"book_count" json:"book_count"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BookRef is a non-owning reference to a book in the author's collection
type BookRef struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Genre     string    `db:"genre" json:"genre"`
	Published int       `db:"published" json:"published"`
}

// Sanitize removes sensitive data before sending to client
func (a *Author) Sanitize() {
	a.PasswordHash = ""
}
