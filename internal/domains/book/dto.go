package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AddBookRequest - authenticated add-book input.
// The owning author comes from the request context, never from the body.
type AddBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Genre     string `json:"genre" binding:"required"`
	Published int    `json:"published" binding:"required"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(5, 255).Error("title must be at least 5 characters"),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Published,
			validation.Required.Error("published year is required"),
			validation.Min(0),
			validation.Max(time.Now().Year()+1),
		),
	)
}

// BookDTO - public book representation with the author resolved
type BookDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Published int       `json:"published"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts the joined read-model row to its public representation
func (b *BookWithAuthor) ToDTO() BookDTO {
	return BookDTO{
		ID:        b.ID,
		Title:     b.Title,
		Genre:     b.Genre,
		Published: b.Published,
		Author:    b.Author,
		CreatedAt: b.CreatedAt,
	}
}
