package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-api/internal/domains/author"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
)

// AuthorHandler handles HTTP requests for the author domain.
// Stateless - only carries dependencies.
type AuthorHandler struct {
	service author.Service
}

// NewAuthorHandler creates the handler instance
func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// ========================================
// SIGNUP / LOGIN ENDPOINTS
// ========================================

// Create handles POST /authors (signup, public)
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	dto, err := h.service.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/authors/"+dto.ID.String())
	response.Success(c, http.StatusCreated, "Author created", dto)
}

// Login handles POST /auth/login (public)
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", loginResp)
}

// Session handles GET /auth/session behind OptionalAuth: reports whether
// the presented token resolved to an identity
func (h *AuthorHandler) Session(c *gin.Context) {
	authorID, ok := middleware.AuthorIDFromContext(c)

	data := gin.H{"authenticated": ok}
	if ok {
		data["author_id"] = authorID
	}

	response.Success(c, http.StatusOK, "", data)
}

// ========================================
// CRUD ENDPOINTS
// ========================================

// GetByID handles GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	dto, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// GetAll handles GET /authors
func (h *AuthorHandler) GetAll(c *gin.Context) {
	dtos, err := h.service.GetAllAuthors(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dtos)
}

// Update handles PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author updated", dto)
}

// Delete handles DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	dto, err := h.service.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author deleted", dto)
}

// ========================================
// HELPERS
// ========================================

func (h *AuthorHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to HTTP status codes
func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, author.ErrUsernameAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, author.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
