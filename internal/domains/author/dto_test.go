package author

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCreateAuthorRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateAuthorRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: CreateAuthorRequest{
				Name:     "Jane Doe",
				Username: "jane",
				Password: "secret123",
				Born:     intPtr(1975),
			},
			wantErr: false,
		},
		{
			name: "valid without born",
			req: CreateAuthorRequest{
				Name:     "Jane Doe",
				Username: "jane",
				Password: "secret123",
			},
			wantErr: false,
		},
		{
			name: "name too short",
			req: CreateAuthorRequest{
				Name:     "Jan",
				Username: "jane",
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "missing username",
			req: CreateAuthorRequest{
				Name:     "Jane Doe",
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			req: CreateAuthorRequest{
				Name:     "Jane Doe",
				Username: "jane",
				Password: "abc",
			},
			wantErr: true,
		},
		{
			name: "born in the future",
			req: CreateAuthorRequest{
				Name:     "Jane Doe",
				Username: "jane",
				Password: "secret123",
				Born:     intPtr(9999),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateAuthorRequestValidate(t *testing.T) {
	// Empty fields mean "leave untouched" and must pass
	assert.NoError(t, UpdateAuthorRequest{}.Validate())
	assert.NoError(t, UpdateAuthorRequest{Name: "Jane Doe"}.Validate())
	assert.NoError(t, UpdateAuthorRequest{Born: intPtr(1975)}.Validate())

	// Provided fields are still held to the same rules
	assert.Error(t, UpdateAuthorRequest{Name: "X"}.Validate())
	assert.Error(t, UpdateAuthorRequest{Password: "abc"}.Validate())
}

func TestAuthorJSONNeverExposesPasswordHash(t *testing.T) {
	a := Author{
		Name:         "Jane Doe",
		Username:     "jane",
		PasswordHash: "$2a$12$something",
	}

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$12$")

	dto, err := json.Marshal(a.ToDTO(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(dto), "password")
}
