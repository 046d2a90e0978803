// Package backend wraps the hosted account/document service the application
// is built on. The service owns identities, sessions and the document
// database; this package only exposes the small request/response surface the
// client needs and maps vendor errors to sentinel values.
package backend

import (
	"context"
	"time"
)

// Account is the service-managed identity record for a user. It is owned and
// mutated exclusively by the backend; the client only reads it.
type Account struct {
	ID            string
	Email         string
	Name          string
	EmailVerified bool
	CreatedAt     time.Time
}

// Document is a record from the document database. Fields holds the
// application-level attributes; the service-assigned metadata is lifted into
// the struct fields.
type Document struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

// Query is a document filter in the vendor's query form.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute"`
	Values    []any  `json:"values"`
}

// Equal builds an equality filter on the given attribute.
func Equal(attribute string, value any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: []any{value}}
}

// Client is the facade over the backend service. Session state (the secret
// issued by CreateSession) is held by the implementation and attached to
// subsequent calls.
type Client interface {
	// CreateAccount registers a new identity. Fails with ErrEmailTaken on a
	// duplicate e-mail and ErrWeakPassword when the service rejects the
	// password.
	CreateAccount(ctx context.Context, id, email, password, name string) (*Account, error)

	// CreateSession authenticates with an email/password pair and retains the
	// issued session secret for later calls. Fails with ErrInvalidCredentials
	// when the pair is rejected.
	CreateSession(ctx context.Context, email, password string) error

	// CurrentAccount returns the identity bound to the current session.
	// Fails with ErrNoSession for guests.
	CurrentAccount(ctx context.Context) (*Account, error)

	// DropSession clears the retained session secret and returns it.
	// Subsequent calls run as guests; the returned secret can still be
	// destroyed remotely with DeleteSession. Returns "" when no session is
	// retained.
	DropSession() string

	// DeleteSession destroys the session behind the given secret, which may
	// no longer be the retained one. A matching retained secret is dropped
	// even when the remote call fails.
	DeleteSession(ctx context.Context, secret string) error

	// ListDocuments returns the documents of a collection matching all given
	// queries.
	ListDocuments(ctx context.Context, collectionID string, queries ...Query) ([]Document, error)

	// CreateDocument stores a new document under the given id. Fails with
	// ErrConflict when the id is already taken.
	CreateDocument(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error)

	// UpdateDocument patches an existing document.
	UpdateDocument(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, collectionID, documentID string) error
}
