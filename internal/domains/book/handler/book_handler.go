package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-api/internal/domains/author"
	"library-api/internal/domains/book"
	"library-api/internal/events"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
)

// BookHandler handles HTTP requests for the book domain
type BookHandler struct {
	service book.Service
	broker  *events.RedisBroker
}

// NewBookHandler creates the handler instance
func NewBookHandler(service book.Service, broker *events.RedisBroker) *BookHandler {
	return &BookHandler{
		service: service,
		broker:  broker,
	}
}

// Add handles POST /books (protected).
// The owning author is the identity resolved by the auth middleware.
func (h *BookHandler) Add(c *gin.Context) {
	authorID, ok := middleware.AuthorIDFromContext(c)
	if !ok {
		// RequireAuth already guards this route; this only trips when the
		// route is wired without it
		response.Unauthorized(c, book.ErrNotAuthenticated.Error())
		return
	}

	var req book.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	dto, err := h.service.AddBook(c.Request.Context(), authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+dto.ID.String())
	response.Success(c, http.StatusCreated, "Book added", dto)
}

// GetByID handles GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	dto, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// List handles GET /books and GET /books?genre=...
func (h *BookHandler) List(c *gin.Context) {
	var (
		dtos []book.BookDTO
		err  error
	)

	if genre := c.Query("genre"); genre != "" {
		dtos, err = h.service.GetBooksByGenre(c.Request.Context(), genre)
	} else {
		dtos, err = h.service.GetAllBooks(c.Request.Context())
	}

	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dtos)
}

// Stream handles GET /books/stream: pushes newBook events over SSE.
// Publish-on-write, no replay; a late subscriber starts from now.
func (h *BookHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	eventCh, cancel := h.broker.SubscribeNewBooks(ctx)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-eventCh:
			if !ok {
				return false
			}
			c.SSEvent("newBook", event)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// handleError maps domain errors to HTTP status codes
func (h *BookHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, book.ErrNotAuthenticated):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, book.ErrBookNotFound), errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, book.ErrDuplicateTitle):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
