package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/domains/author"
	"library-api/pkg/jwt"
)

// memoryRepository is an in-memory author.Repository for unit tests
type memoryRepository struct {
	authors map[uuid.UUID]author.Author
	books   map[uuid.UUID][]author.BookRef
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		authors: make(map[uuid.UUID]author.Author),
		books:   make(map[uuid.UUID][]author.BookRef),
	}
}

func (r *memoryRepository) Create(_ context.Context, a *author.Author) error {
	for _, existing := range r.authors {
		if existing.Username == a.Username {
			return author.ErrUsernameAlreadyExists
		}
	}
	r.authors[a.ID] = *a
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	cp := a
	return &cp, nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*author.Author, error) {
	for _, a := range r.authors {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (r *memoryRepository) FindAll(_ context.Context) ([]author.Author, error) {
	all := make([]author.Author, 0, len(r.authors))
	for _, a := range r.authors {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (r *memoryRepository) Update(_ context.Context, a *author.Author) error {
	if _, ok := r.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	for id, existing := range r.authors {
		if id != a.ID && existing.Username == a.Username {
			return author.ErrUsernameAlreadyExists
		}
	}
	r.authors[a.ID] = *a
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.authors, id)
	delete(r.books, id)
	return nil
}

func (r *memoryRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, a := range r.authors {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) ListBooks(_ context.Context, authorID uuid.UUID) ([]author.BookRef, error) {
	return r.books[authorID], nil
}

func newTestService(t *testing.T) (author.Service, *memoryRepository, *jwt.Manager) {
	t.Helper()
	repo := newMemoryRepository()
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewAuthorService(repo, manager), repo, manager
}

func intPtr(v int) *int { return &v }

func janeRequest() author.CreateAuthorRequest {
	return author.CreateAuthorRequest{
		Name:     "Jane Doe",
		Username: "jane",
		Password: "secret123",
		Born:     intPtr(1975),
	}
}

func TestCreateAuthor(t *testing.T) {
	svc, repo, _ := newTestService(t)

	dto, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", dto.Name)
	assert.Equal(t, "jane", dto.Username)
	assert.Equal(t, 1975, *dto.Born)
	assert.Equal(t, 0, dto.BookCount)
	assert.Empty(t, dto.Books)

	// The stored hash is not the plaintext and survives bcrypt verification
	stored, err := repo.FindByUsername(context.Background(), "jane")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	// The response never carries password material
	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret123")
}

func TestCreateAuthorDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	req := janeRequest()
	req.Name = "Jane Other"
	_, err = svc.CreateAuthor(context.Background(), req)
	assert.ErrorIs(t, err, author.ErrUsernameAlreadyExists)
}

func TestCreateAuthorValidation(t *testing.T) {
	svc, repo, _ := newTestService(t)

	req := janeRequest()
	req.Name = "Jan" // below minimum length 4
	_, err := svc.CreateAuthor(context.Background(), req)
	assert.Error(t, err)
	assert.Empty(t, repo.authors)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, manager := newTestService(t)

	created, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), author.LoginRequest{
		Username: "jane",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, created.ID, resp.Author.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	// The token resolves back to the same author
	authorID, err := manager.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, authorID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Username: "jane",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), author.LoginRequest{
		Username: "nobody",
		Password: "secret123",
	})
	// Same error as a wrong password: username existence is not leaked
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)
}

func TestUpdateAuthorPartial(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	// Name only: born must survive
	dto, err := svc.UpdateAuthor(context.Background(), created.ID, author.UpdateAuthorRequest{
		Name: "Jane Updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", dto.Name)
	require.NotNil(t, dto.Born)
	assert.Equal(t, 1975, *dto.Born)

	// Born only: name must survive
	dto, err = svc.UpdateAuthor(context.Background(), created.ID, author.UpdateAuthorRequest{
		Born: intPtr(1980),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", dto.Name)
	assert.Equal(t, 1980, *dto.Born)
}

func TestUpdateAuthorValidationLeavesRecordUnchanged(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	_, err = svc.UpdateAuthor(context.Background(), created.ID, author.UpdateAuthorRequest{
		Name: "X", // below minimum length 4
	})
	assert.Error(t, err)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.Name)
}

func TestUpdateAuthorNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateAuthor(context.Background(), uuid.New(), author.UpdateAuthorRequest{
		Name: "Jane Doe",
	})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUpdateAuthorUsernameCollision(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	other, err := svc.CreateAuthor(context.Background(), author.CreateAuthorRequest{
		Name:     "John Doe",
		Username: "john",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAuthor(context.Background(), other.ID, author.UpdateAuthorRequest{
		Username: "jane",
	})
	assert.ErrorIs(t, err, author.ErrUsernameAlreadyExists)
}

func TestDeleteAuthor(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	dto, err := svc.DeleteAuthor(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, dto.ID)
	assert.Empty(t, repo.authors)

	_, err = svc.DeleteAuthor(context.Background(), created.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestGetAuthorResolvesBooks(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.CreateAuthor(context.Background(), janeRequest())
	require.NoError(t, err)

	repo.books[created.ID] = []author.BookRef{
		{ID: uuid.New(), Title: "Long Enough Title", Genre: "scifi", Published: 2020},
	}

	dto, err := svc.GetAuthor(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, dto.Books, 1)
	assert.Equal(t, "Long Enough Title", dto.Books[0].Title)
}
