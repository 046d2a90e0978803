package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, "proj-1", "db-1", time.Second)
	require.NoError(t, err)
	return c
}

func TestHTTPClient_ProjectHeaderAndPath(t *testing.T) {
	var gotPath, gotProject string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotProject = r.Header.Get("X-Appwrite-Project")
		w.Write([]byte(`{"$id":"u1","name":"Alice","email":"a@b.com","emailVerification":true,"$createdAt":"2026-01-02T03:04:05.000+00:00"}`))
	})

	acc, err := c.CurrentAccount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/account", gotPath)
	assert.Equal(t, "proj-1", gotProject)
	assert.Equal(t, "u1", acc.ID)
	assert.Equal(t, "Alice", acc.Name)
	assert.True(t, acc.EmailVerified)
	assert.Equal(t, 2026, acc.CreatedAt.Year())
}

func TestHTTPClient_SessionSecretIsRetained(t *testing.T) {
	var sawSecret string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			w.Write([]byte(`{"$id":"s1","secret":"topsecret"}`))
		case "/account":
			sawSecret = r.Header.Get("X-Appwrite-Session")
			w.Write([]byte(`{"$id":"u1","name":"Alice","email":"a@b.com"}`))
		}
	})

	ctx := context.Background()
	require.NoError(t, c.CreateSession(ctx, "a@b.com", "pw"))

	_, err := c.CurrentAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "topsecret", sawSecret)
}

func TestHTTPClient_DropSessionReturnsAndClearsSecret(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"$id":"s1","secret":"topsecret"}`))
	})
	require.NoError(t, c.CreateSession(context.Background(), "a@b.com", "pw"))

	assert.Equal(t, "topsecret", c.DropSession())
	assert.Empty(t, c.DropSession(), "second drop finds nothing")
}

func TestHTTPClient_DeleteSessionDropsMatchingSecretOnFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			w.Write([]byte(`{"$id":"s1","secret":"topsecret"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom","code":500,"type":"general_unknown"}`))
		}
	})

	ctx := context.Background()
	require.NoError(t, c.CreateSession(ctx, "a@b.com", "pw"))

	err := c.DeleteSession(ctx, "topsecret")
	assert.ErrorIs(t, err, ErrUnavailable)
	// The retained secret matches the destroyed one and must be dropped so
	// the client never keeps presenting a session it was told to destroy.
	assert.Empty(t, c.DropSession())
}

func TestHTTPClient_DeleteSessionPresentsGivenSecretNotRetained(t *testing.T) {
	var seen []string
	next := "first"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			w.Write([]byte(`{"$id":"s","secret":"` + next + `"}`))
		default:
			seen = append(seen, r.Header.Get("X-Appwrite-Session"))
			w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	require.NoError(t, c.CreateSession(ctx, "a@b.com", "pw"))
	old := c.DropSession()

	// A newer session is established before the old one is destroyed.
	next = "second"
	require.NoError(t, c.CreateSession(ctx, "a@b.com", "pw"))

	require.NoError(t, c.DeleteSession(ctx, old))
	require.Equal(t, []string{"first"}, seen, "the destroy must present the dropped secret")

	// The newer retained secret survives and keeps authenticating calls.
	_, err := c.CurrentAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"invalid credentials", 401, `{"message":"Invalid credentials","code":401,"type":"user_invalid_credentials"}`, ErrInvalidCredentials},
		{"email taken", 409, `{"message":"A user with the same email already exists","code":409,"type":"user_already_exists"}`, ErrEmailTaken},
		{"weak password", 400, `{"message":"Password must be between 8 and 256 characters","code":400,"type":"password_recently_used"}`, ErrWeakPassword},
		{"guest", 401, `{"message":"User (role: guests) missing scope (account)","code":401,"type":"general_unauthorized_scope"}`, ErrNoSession},
		{"document conflict", 409, `{"message":"Document already exists","code":409,"type":"document_already_exists"}`, ErrConflict},
		{"document missing", 404, `{"message":"Document not found","code":404,"type":"document_not_found"}`, ErrNotFound},
		{"server error", 503, `{"message":"Service is unavailable","code":503,"type":"general_service_disabled"}`, ErrUnavailable},
		{"untyped 401", 401, `{}`, ErrNoSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.CurrentAccount(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewHTTPClient(srv.URL, "proj-1", "db-1", time.Second)
	require.NoError(t, err)
	srv.Close()

	_, err = c.CurrentAccount(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_ListDocuments(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db-1/collections/users/documents", r.URL.Path)
		gotQuery = r.URL.Query().Get("queries[]")
		w.Write([]byte(`{"total":1,"documents":[{"$id":"u1","$createdAt":"2026-01-02T03:04:05.000+00:00","$updatedAt":"2026-01-03T00:00:00.000+00:00","$collectionId":"users","$permissions":[],"name":"Alice","loginCount":3}]}`))
	})

	docs, err := c.ListDocuments(context.Background(), "users", Equal("$id", "u1"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"method":"equal","attribute":"$id","values":["u1"]}`, gotQuery)
	require.Len(t, docs, 1)
	assert.Equal(t, "u1", docs[0].ID)
	assert.Equal(t, "Alice", docs[0].Fields["name"])
	assert.NotContains(t, docs[0].Fields, "$collectionId")
	assert.False(t, docs[0].CreatedAt.IsZero())
}

func TestHTTPClient_CreateDocumentBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"$id":"u1","name":"Alice"}`))
	})

	doc, err := c.CreateDocument(context.Background(), "users", "u1", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "Alice", doc.Fields["name"])
}

func TestAdminClient_KeyHeader(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Appwrite-Key")
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	admin, err := NewAdminClient(srv.URL, "proj-1", "secret-key", time.Second)
	require.NoError(t, err)

	require.NoError(t, admin.CreateDatabase(context.Background(), "db-1", "UserDatabase"))
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "/databases", gotPath)
}
