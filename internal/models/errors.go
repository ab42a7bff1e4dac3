package models

import "errors"

// Sentinel errors returned by the service and repository layers. Handlers map
// them to HTTP status codes; anything else is treated as a store failure and
// becomes a generic 500.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
