package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// AUTHOR DTOs
// ========================================

// CreateAuthorRequest - signup input
type CreateAuthorRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Born     *int   `json:"born,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(4, 100).Error("name must be at least 4 characters"),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 64),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.Born,
			validation.When(r.Born != nil, validation.Min(0), validation.Max(time.Now().Year())),
		),
	)
}

// UpdateAuthorRequest - partial update; empty fields are left untouched.
// Born is an independent conditional update: only applied when present.
type UpdateAuthorRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Born     *int   `json:"born,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != "", validation.Length(4, 100).Error("name must be at least 4 characters")),
		),
		validation.Field(&r.Username,
			validation.When(r.Username != "", validation.Length(3, 64)),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != "", validation.Length(6, 128)),
		),
		validation.Field(&r.Born,
			validation.When(r.Born != nil, validation.Min(0), validation.Max(time.Now().Year())),
		),
	)
}

// LoginRequest - credentials presented at login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - session token plus the authenticated author
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Author    AuthorDTO `json:"author"`
}

// AuthorDTO - public author representation (safe to expose)
type AuthorDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Born      *int      `json:"born,omitempty"`
	BookCount int       `json:"book_count"`
	Books     []BookRef `json:"books"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts the entity to its public representation.
// The password hash never crosses this boundary.
func (a *Author) ToDTO(books []BookRef) AuthorDTO {
	if books == nil {
		books = []BookRef{}
	}
	return AuthorDTO{
		ID:        a.ID,
		Name:      a.Name,
		Username:  a.Username,
		Born:      a.Born,
		BookCount: a.BookCount,
		Books:     books,
		CreatedAt: a.CreatedAt,
	}
}
