package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	authorID := uuid.New()

	token, err := manager.Generate(authorID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, authorID, got)
}

func TestValidateWrongSecret(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
