package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// AdminClient performs privileged schema operations with a server API key.
// It is only used by the one-shot setup tooling, never by the application
// itself.
type AdminClient struct {
	*HTTPClient
}

// NewAdminClient builds a privileged client. The key is sent on every
// request via the vendor's key header.
func NewAdminClient(endpoint, project, apiKey string, timeout time.Duration) (*AdminClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("backend: api key is required for admin operations")
	}
	c, err := NewHTTPClient(endpoint, project, "", timeout)
	if err != nil {
		return nil, err
	}
	c.apiKey = apiKey
	return &AdminClient{HTTPClient: c}, nil
}

// CreateDatabase creates a database with the given id and display name.
// Returns ErrConflict when it already exists.
func (c *AdminClient) CreateDatabase(ctx context.Context, id, name string) error {
	body := map[string]any{"databaseId": id, "name": name}
	return c.do(ctx, http.MethodPost, "/databases", nil, body, nil)
}

// CreateCollection creates a collection inside a database.
func (c *AdminClient) CreateCollection(ctx context.Context, databaseID, id, name string) error {
	body := map[string]any{"collectionId": id, "name": name}
	path := fmt.Sprintf("/databases/%s/collections", databaseID)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

func (c *AdminClient) attributePath(databaseID, collectionID, kind string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/attributes/%s", databaseID, collectionID, kind)
}

// CreateStringAttribute adds a string attribute. Set array for list-valued
// attributes such as interest tags.
func (c *AdminClient) CreateStringAttribute(ctx context.Context, databaseID, collectionID, key string, size int, required, array bool) error {
	body := map[string]any{"key": key, "size": size, "required": required, "array": array}
	return c.do(ctx, http.MethodPost, c.attributePath(databaseID, collectionID, "string"), nil, body, nil)
}

// CreateIntegerAttribute adds an integer attribute.
func (c *AdminClient) CreateIntegerAttribute(ctx context.Context, databaseID, collectionID, key string, required bool) error {
	body := map[string]any{"key": key, "required": required}
	return c.do(ctx, http.MethodPost, c.attributePath(databaseID, collectionID, "integer"), nil, body, nil)
}

// CreateBooleanAttribute adds a boolean attribute.
func (c *AdminClient) CreateBooleanAttribute(ctx context.Context, databaseID, collectionID, key string, required bool) error {
	body := map[string]any{"key": key, "required": required}
	return c.do(ctx, http.MethodPost, c.attributePath(databaseID, collectionID, "boolean"), nil, body, nil)
}

// CreateDatetimeAttribute adds a datetime attribute.
func (c *AdminClient) CreateDatetimeAttribute(ctx context.Context, databaseID, collectionID, key string, required bool) error {
	body := map[string]any{"key": key, "required": required}
	return c.do(ctx, http.MethodPost, c.attributePath(databaseID, collectionID, "datetime"), nil, body, nil)
}

// CreateEnumAttribute adds an enumerated attribute with the allowed elements.
func (c *AdminClient) CreateEnumAttribute(ctx context.Context, databaseID, collectionID, key string, elements []string, required bool) error {
	body := map[string]any{"key": key, "elements": elements, "required": required}
	return c.do(ctx, http.MethodPost, c.attributePath(databaseID, collectionID, "enum"), nil, body, nil)
}
