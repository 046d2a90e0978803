package backend

import "errors"

// Sentinel errors returned by Client implementations. Callers match them
// with errors.Is; the raw vendor message is carried in the wrapping error.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrWeakPassword       = errors.New("password rejected by policy")
	ErrNoSession          = errors.New("no active session")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUnavailable        = errors.New("service unavailable")
)
