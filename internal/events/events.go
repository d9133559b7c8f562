package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NewBookChannel is the pub/sub topic books are announced on
const NewBookChannel = "library:new_book"

// NewBookEvent is published whenever a book is added.
// Delivery is at-least-once with no replay; subscribers that connect
// later never see earlier books.
type NewBookEvent struct {
	BookID     uuid.UUID `json:"book_id"`
	Title      string    `json:"title"`
	Genre      string    `json:"genre"`
	Published  int       `json:"published"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher announces new books to subscribers
type Publisher interface {
	PublishNewBook(ctx context.Context, event NewBookEvent) error
}
