// Package state holds the process-wide authentication state and exposes the
// flow operations to the UI layer. The container is constructed explicitly
// at startup and passed down by handle; there is no ambient singleton, and
// state only changes as a result of its operations completing.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/msavelyeva/eventhub/internal/models"
)

// ErrNoUser is returned by operations that require a signed-in user.
var ErrNoUser = errors.New("no user is signed in")

// TopicAuthChanged is published on the container's bus after every state
// transition, with the new Snapshot as the single argument.
const TopicAuthChanged = "auth.state.changed"

// Flow is the auth/profile synchronization service consumed by the
// container. Implemented by *auth.Service.
type Flow interface {
	RestoreSession(ctx context.Context) (*models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)
	SignUp(ctx context.Context, data models.SignupData) (*models.Profile, error)
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, id string, changes map[string]any) (*models.Profile, error)
	DeleteAccount(ctx context.Context, id string) error
}

// Snapshot is an immutable view of the auth state at one point in time.
type Snapshot struct {
	User        *models.Profile
	Loading     bool
	Err         error
	AuthChecked bool
}

// Container owns the auth state. All mutation goes through the operation
// methods; reads go through Snapshot. Safe for concurrent use.
type Container struct {
	mu   sync.RWMutex
	flow Flow
	bus  EventBus.Bus

	user        *models.Profile
	loading     bool
	err         error
	authChecked bool
}

// NewContainer builds a container in the initial "unknown" state: loading,
// auth check not yet completed.
func NewContainer(flow Flow) *Container {
	return &Container{
		flow:    flow,
		bus:     EventBus.New(),
		loading: true,
	}
}

// Snapshot returns the current state.
func (c *Container) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{User: c.user, Loading: c.loading, Err: c.err, AuthChecked: c.authChecked}
}

// IsAuthenticated reports whether a user is currently resolved.
func (c *Container) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

// ClearError drops the last operation error.
func (c *Container) ClearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
	c.publish()
}

// Subscribe registers fn to receive a Snapshot after every state change.
// Delivery is synchronous with the publishing operation.
func (c *Container) Subscribe(fn func(Snapshot)) error {
	return c.bus.Subscribe(TopicAuthChanged, fn)
}

// Unsubscribe removes a previously registered handler.
func (c *Container) Unsubscribe(fn func(Snapshot)) error {
	return c.bus.Unsubscribe(TopicAuthChanged, fn)
}

// RestoreSession runs the session-restoration flow. The auth check is marked
// completed afterwards regardless of the outcome, and the resolved user (or
// absence) is applied unconditionally.
func (c *Container) RestoreSession(ctx context.Context) {
	c.begin()

	user, _ := c.flow.RestoreSession(ctx)

	c.mu.Lock()
	c.user = user
	c.loading = false
	c.authChecked = true
	c.mu.Unlock()
	c.publish()
}

// RefreshUser re-resolves the current user; it is an alias for
// RestoreSession.
func (c *Container) RefreshUser(ctx context.Context) {
	c.RestoreSession(ctx)
}

// SignIn runs the sign-in flow and applies the result. The returned error is
// also retained as the last error for the UI.
func (c *Container) SignIn(ctx context.Context, email, password string) error {
	c.begin()

	user, err := c.flow.SignIn(ctx, email, password)
	c.finish(user, err)
	return err
}

// SignUp runs the sign-up flow and applies the result.
func (c *Container) SignUp(ctx context.Context, data models.SignupData) error {
	c.begin()

	user, err := c.flow.SignUp(ctx, data)
	c.finish(user, err)
	return err
}

// SignOut clears the current user unconditionally. The remote session
// destroy is best effort inside the flow; local state never stays signed in.
func (c *Container) SignOut(ctx context.Context) error {
	c.begin()

	err := c.flow.SignOut(ctx)

	c.mu.Lock()
	c.user = nil
	c.err = err
	c.loading = false
	c.mu.Unlock()
	c.publish()
	return err
}

// UpdateUser applies explicit profile edits for the signed-in user.
func (c *Container) UpdateUser(ctx context.Context, changes map[string]any) error {
	c.mu.RLock()
	current := c.user
	c.mu.RUnlock()
	if current == nil {
		return ErrNoUser
	}

	c.begin()
	user, err := c.flow.UpdateProfile(ctx, current.ID, changes)
	if err != nil {
		// Keep the previous user on a failed edit.
		user = current
	}
	c.finish(user, err)
	return err
}

// DeleteAccount removes the signed-in user's profile document and session,
// then clears local state.
func (c *Container) DeleteAccount(ctx context.Context) error {
	c.mu.RLock()
	current := c.user
	c.mu.RUnlock()
	if current == nil {
		return ErrNoUser
	}

	c.begin()
	err := c.flow.DeleteAccount(ctx, current.ID)

	c.mu.Lock()
	if err == nil {
		c.user = nil
	}
	c.err = err
	c.loading = false
	c.mu.Unlock()
	c.publish()
	return err
}

func (c *Container) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()
	c.publish()
}

// finish applies an operation result: on success the user is replaced, on
// failure the error is retained and the user left untouched.
func (c *Container) finish(user *models.Profile, err error) {
	c.mu.Lock()
	if err == nil {
		c.user = user
	}
	c.err = err
	c.loading = false
	c.mu.Unlock()
	c.publish()
}

func (c *Container) publish() {
	c.bus.Publish(TopicAuthChanged, c.Snapshot())
}
