package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound        = errors.New("author not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Service-level (business logic) errors
var (
	// Login never reveals whether the username or the password was wrong
	ErrInvalidCredentials = errors.New("invalid username or password")
)
