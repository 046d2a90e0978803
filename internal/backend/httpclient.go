package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// HTTPClient talks to the backend service over its REST protocol
// (JSON bodies, project header, session secret header). Safe for concurrent
// use: the retained session secret is guarded, so detached background calls
// may run alongside foreground requests.
type HTTPClient struct {
	endpoint string
	project  string
	database string
	apiKey   string
	hc       *http.Client

	mu      sync.RWMutex
	session string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given endpoint (e.g.
// "https://cloud.appwrite.io/v1"), project and database.
func NewHTTPClient(endpoint, project, database string, timeout time.Duration) (*HTTPClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("backend: endpoint is required")
	}
	if project == "" {
		return nil, fmt.Errorf("backend: project id is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		project:  project,
		database: database,
		hc:       &http.Client{Timeout: timeout},
	}, nil
}

// accountPayload mirrors the vendor's user object.
type accountPayload struct {
	ID            string `json:"$id"`
	CreatedAt     string `json:"$createdAt"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerification"`
}

func (p *accountPayload) account() *Account {
	return &Account{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.Name,
		EmailVerified: p.EmailVerified,
		CreatedAt:     parseTime(p.CreatedAt),
	}
}

// apiError is the vendor error envelope.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (c *HTTPClient) CreateAccount(ctx context.Context, id, email, password, name string) (*Account, error) {
	body := map[string]any{"userId": id, "email": email, "password": password, "name": name}
	var out accountPayload
	if err := c.do(ctx, http.MethodPost, "/account", nil, body, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

func (c *HTTPClient) CreateSession(ctx context.Context, email, password string) error {
	body := map[string]any{"email": email, "password": password}
	var out struct {
		ID     string `json:"$id"`
		Secret string `json:"secret"`
	}
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, &out); err != nil {
		return err
	}
	c.mu.Lock()
	c.session = out.Secret
	c.mu.Unlock()
	return nil
}

func (c *HTTPClient) CurrentAccount(ctx context.Context) (*Account, error) {
	var out accountPayload
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

func (c *HTTPClient) DropSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	secret := c.session
	c.session = ""
	return secret
}

// DeleteSession destroys the session behind the given secret. The request
// presents that secret, not the retained one, so a session established after
// the secret was dropped is never the one destroyed. A matching retained
// secret is cleared regardless of the remote outcome.
func (c *HTTPClient) DeleteSession(ctx context.Context, secret string) error {
	err := c.doWithSecret(ctx, http.MethodDelete, "/account/sessions/current", nil, nil, nil, secret)
	c.mu.Lock()
	if c.session == secret {
		c.session = ""
	}
	c.mu.Unlock()
	return err
}

func (c *HTTPClient) ListDocuments(ctx context.Context, collectionID string, queries ...Query) ([]Document, error) {
	params := url.Values{}
	for _, q := range queries {
		raw, err := sonic.Marshal(q)
		if err != nil {
			return nil, fmt.Errorf("backend: encoding query: %w", err)
		}
		params.Add("queries[]", string(raw))
	}

	var out struct {
		Total     int              `json:"total"`
		Documents []map[string]any `json:"documents"`
	}
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", c.database, collectionID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(out.Documents))
	for _, raw := range out.Documents {
		docs = append(docs, documentFromMap(raw))
	}
	return docs, nil
}

func (c *HTTPClient) CreateDocument(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error) {
	body := map[string]any{"documentId": documentID, "data": fields}
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", c.database, collectionID)

	var raw map[string]any
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return nil, err
	}
	doc := documentFromMap(raw)
	return &doc, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error) {
	body := map[string]any{"data": fields}
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.database, collectionID, documentID)

	var raw map[string]any
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &raw); err != nil {
		return nil, err
	}
	doc := documentFromMap(raw)
	return &doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", c.database, collectionID, documentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one request presenting the retained session secret.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	c.mu.RLock()
	secret := c.session
	c.mu.RUnlock()
	return c.doWithSecret(ctx, method, path, params, body, out, secret)
}

// doWithSecret performs one request against the service: marshals body, sets
// the project/session/key headers, and decodes either the response into out
// or the error envelope into a sentinel-wrapped error.
func (c *HTTPClient) doWithSecret(ctx context.Context, method, path string, params url.Values, body, out any, secret string) error {
	u := c.endpoint + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("backend: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.project)
	if secret != "" {
		req.Header.Set("X-Appwrite-Session", secret)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Appwrite-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var envelope apiError
		_ = sonic.Unmarshal(data, &envelope)
		return mapError(resp.StatusCode, envelope)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: decoding response: %w", err)
	}
	return nil
}

// mapError translates the vendor error envelope into a sentinel error,
// keeping the original message in the wrap. Matching is by error type first
// and HTTP status second.
func mapError(status int, e apiError) error {
	var sentinel error
	switch e.Type {
	case "user_invalid_credentials", "user_invalid_token":
		sentinel = ErrInvalidCredentials
	case "user_already_exists", "user_email_already_exists":
		sentinel = ErrEmailTaken
	case "general_unauthorized_scope", "user_session_not_found":
		sentinel = ErrNoSession
	case "document_already_exists":
		sentinel = ErrConflict
	case "document_not_found", "collection_not_found", "database_not_found", "user_not_found":
		sentinel = ErrNotFound
	default:
		if strings.HasPrefix(e.Type, "password_") {
			sentinel = ErrWeakPassword
			break
		}
		switch {
		case status == http.StatusUnauthorized:
			sentinel = ErrNoSession
		case status == http.StatusNotFound:
			sentinel = ErrNotFound
		case status == http.StatusConflict:
			sentinel = ErrConflict
		case status >= 500 || status == http.StatusTooManyRequests:
			sentinel = ErrUnavailable
		}
	}

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	if sentinel == nil {
		return fmt.Errorf("backend: %s (status %d, type %s)", msg, status, e.Type)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// documentFromMap lifts the service metadata out of a raw document map and
// leaves the application attributes in Fields.
func documentFromMap(raw map[string]any) Document {
	doc := Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "$id":
			doc.ID, _ = v.(string)
		case "$createdAt":
			if s, ok := v.(string); ok {
				doc.CreatedAt = parseTime(s)
			}
		case "$updatedAt":
			if s, ok := v.(string); ok {
				doc.UpdatedAt = parseTime(s)
			}
		case "$collectionId", "$databaseId", "$permissions", "$sequence":
			// metadata the client has no use for
		default:
			doc.Fields[k] = v
		}
	}
	return doc
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
