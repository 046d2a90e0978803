package auth

import (
	"errors"
	"fmt"

	"github.com/msavelyeva/eventhub/internal/backend"
)

// Errors surfaced to the UI layer. The messages are user-facing copy; the
// screens print them verbatim. Callers match with errors.Is.
var (
	ErrValidation         = errors.New("signup data is incomplete")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password does not meet the security requirements")
	ErrNetwork            = errors.New("could not reach the server")
	ErrProfileLoad        = errors.New("failed to load your profile")
	ErrUnknown            = errors.New("something went wrong")
)

// classify maps backend facade errors into the taxonomy above. Anything
// without a dedicated bucket becomes ErrUnknown with the cause preserved in
// the wrap. There is no retry at this layer.
func classify(err error) error {
	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, backend.ErrEmailTaken):
		return ErrEmailInUse
	case errors.Is(err, backend.ErrWeakPassword):
		return ErrWeakPassword
	case errors.Is(err, backend.ErrUnavailable):
		return ErrNetwork
	default:
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}
}
