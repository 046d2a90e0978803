// Package auth orchestrates the session and profile-document flows: sign-up,
// sign-in, session restoration, sign-out, and the lazy reconciliation of
// profile documents with backend accounts.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msavelyeva/eventhub/internal/backend"
	"github.com/msavelyeva/eventhub/internal/logging"
	"github.com/msavelyeva/eventhub/internal/models"
)

// detachedTimeout bounds background side effects (login-stat updates,
// remote sign-out) that outlive the operation that spawned them.
const detachedTimeout = 10 * time.Second

// Service implements the auth/profile synchronization flow on top of the
// backend facade. Operations are not safe for concurrent invocation against
// the same Service; the UI disables its controls while one is in flight.
type Service struct {
	client     backend.Client
	collection string
	log        logging.Logger

	// Injection points for deterministic tests.
	now   func() time.Time
	newID func() string

	wg sync.WaitGroup
}

// NewService builds a Service storing profile documents in the given
// collection.
func NewService(client backend.Client, usersCollection string, log logging.Logger) *Service {
	return &Service{
		client:     client,
		collection: usersCollection,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// RestoreSession resolves the profile for an existing backend session.
// A missing session is the ordinary guest case and yields (nil, nil); the
// caller marks the auth check as completed either way. A session whose
// profile cannot be resolved also yields nil, degrading to a signed-out UI
// state.
func (s *Service) RestoreSession(ctx context.Context) (*models.Profile, error) {
	acc, err := s.client.CurrentAccount(ctx)
	if err != nil {
		s.log.Debug(ctx, "no active session", "error", err)
		return nil, nil
	}

	profile, created := s.fetchOrCreateProfile(ctx, acc)
	if profile == nil {
		return nil, nil
	}

	// A freshly created document is already seeded with this login counted.
	if !created {
		s.bumpLoginStats(profile)
	}
	s.log.Info(ctx, "session restored", "user", profile.ID)
	return profile, nil
}

// SignIn establishes a new session for the credential pair and resolves the
// profile document. When the session is created but the profile cannot be
// resolved at all, the session is left in place and ErrProfileLoad is
// returned; the next RestoreSession or SignIn repairs the missing document
// through the fetch-or-create path.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	if err := s.client.CreateSession(ctx, email, password); err != nil {
		return nil, classify(err)
	}

	acc, err := s.client.CurrentAccount(ctx)
	if err != nil {
		return nil, classify(err)
	}

	profile, created := s.fetchOrCreateProfile(ctx, acc)
	if profile == nil {
		return nil, ErrProfileLoad
	}

	if !created {
		s.bumpLoginStats(profile)
	}
	s.log.Info(ctx, "signed in", "user", profile.ID)
	return profile, nil
}

// SignUp creates a backend account, a session for it, and the seeded profile
// document. Validation failures are rejected before any network call. There
// is no compensating rollback: if the document creation fails after the
// account exists, the next sign-in heals the gap via fetch-or-create.
func (s *Service) SignUp(ctx context.Context, data models.SignupData) (*models.Profile, error) {
	if data.Name == "" || data.Email == "" || data.Password == "" {
		return nil, ErrValidation
	}
	if !data.AcceptTerms {
		return nil, ErrValidation
	}

	acc, err := s.client.CreateAccount(ctx, s.newID(), data.Email, data.Password, data.Name)
	if err != nil {
		return nil, classify(err)
	}

	if err := s.client.CreateSession(ctx, data.Email, data.Password); err != nil {
		return nil, classify(err)
	}

	role := data.Role
	if !role.Valid() {
		role = models.RoleUser
	}
	interests := data.Interests
	if interests == nil {
		interests = []models.Interest{}
	}

	now := s.now()
	profile := &models.Profile{
		ID:          acc.ID,
		Name:        data.Name,
		Email:       data.Email,
		Role:        role,
		Interests:   interests,
		Active:      true,
		LoginCount:  1,
		LastLoginAt: now,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   now,
		Location:    data.Location,
		PhoneNumber: data.PhoneNumber,
		Bio:         data.Bio,
		DateOfBirth: data.DateOfBirth,
		Gender:      data.Gender,
	}

	doc, err := s.client.CreateDocument(ctx, s.collection, acc.ID, models.ToFields(profile))
	if err != nil {
		s.log.Error(ctx, "profile document creation failed after signup", "user", acc.ID, "error", err)
		return nil, ErrProfileLoad
	}

	s.log.Info(ctx, "account created", "user", acc.ID)
	return models.FromDocument(*doc), nil
}

// SignOut destroys the backend session on a detached task. The caller clears
// its local state immediately; a failed remote destroy is logged and never
// keeps the client signed in. The secret is captured synchronously before
// detaching, so a sign-in that follows immediately can never have its fresh
// session destroyed by the stale task.
func (s *Service) SignOut(ctx context.Context) error {
	secret := s.client.DropSession()
	if secret != "" {
		s.detach(func(ctx context.Context) {
			if err := s.client.DeleteSession(ctx, secret); err != nil {
				s.log.Warn(ctx, "remote session destroy failed", "error", err)
			}
		})
	}
	s.log.Info(ctx, "signed out")
	return nil
}

// UpdateProfile applies explicit profile edits and returns the updated
// record. The updatedAt stamp is refreshed here so screens do not have to.
func (s *Service) UpdateProfile(ctx context.Context, id string, changes map[string]any) (*models.Profile, error) {
	fields := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		fields[k] = v
	}
	fields["updatedAt"] = models.FormatTime(s.now())

	doc, err := s.client.UpdateDocument(ctx, s.collection, id, fields)
	if err != nil {
		return nil, classify(err)
	}
	return models.FromDocument(*doc), nil
}

// DeleteAccount removes the profile document and then destroys the session.
// The document removal is the operation-defining step; the session destroy is
// best effort.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := s.client.DeleteDocument(ctx, s.collection, id); err != nil {
		return classify(err)
	}
	if secret := s.client.DropSession(); secret != "" {
		if err := s.client.DeleteSession(ctx, secret); err != nil {
			s.log.Warn(ctx, "session destroy after account deletion failed", "error", err)
		}
	}
	s.log.Info(ctx, "account deleted", "user", id)
	return nil
}

// Wait blocks until all detached side effects have finished. Called on
// shutdown and by tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

// fetchOrCreateProfile looks up the profile document keyed by the account id
// and lazily creates it from the account's basic attributes when missing.
// The second return value reports whether the document was created by this
// call. Keying the document by the account id makes the creation idempotent:
// a concurrent create loses with a conflict and the winner is re-fetched.
// Unexpected errors are logged and surface as an absent profile.
func (s *Service) fetchOrCreateProfile(ctx context.Context, acc *backend.Account) (*models.Profile, bool) {
	docs, err := s.client.ListDocuments(ctx, s.collection, backend.Equal("$id", acc.ID))
	if err != nil {
		s.log.Error(ctx, "profile lookup failed", "user", acc.ID, "error", err)
		return nil, false
	}
	if len(docs) > 0 {
		return models.FromDocument(docs[0]), false
	}

	now := s.now()
	seed := &models.Profile{
		ID:            acc.ID,
		Name:          acc.Name,
		Email:         acc.Email,
		EmailVerified: acc.EmailVerified,
		Role:          models.RoleUser,
		Interests:     []models.Interest{},
		Active:        true,
		LoginCount:    1,
		LastLoginAt:   now,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     now,
	}

	doc, err := s.client.CreateDocument(ctx, s.collection, acc.ID, models.ToFields(seed))
	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			docs, lerr := s.client.ListDocuments(ctx, s.collection, backend.Equal("$id", acc.ID))
			if lerr == nil && len(docs) > 0 {
				return models.FromDocument(docs[0]), false
			}
		}
		s.log.Error(ctx, "profile document creation failed", "user", acc.ID, "error", err)
		return nil, false
	}

	s.log.Info(ctx, "profile document created", "user", acc.ID)
	return models.FromDocument(*doc), true
}

// bumpLoginStats increments the login counter and refreshes the last-login
// stamp on the resolved profile, then persists the change on a detached
// task. A persistence failure must never block or fail the enclosing
// operation, so it is only logged.
func (s *Service) bumpLoginStats(p *models.Profile) {
	now := s.now()
	p.LoginCount++
	p.LastLoginAt = now
	p.UpdatedAt = now

	fields := map[string]any{
		"loginCount":  p.LoginCount,
		"lastLoginAt": models.FormatTime(now),
		"updatedAt":   models.FormatTime(now),
	}
	id := p.ID
	s.detach(func(ctx context.Context) {
		if _, err := s.client.UpdateDocument(ctx, s.collection, id, fields); err != nil {
			s.log.Warn(ctx, "login stats update failed", "user", id, "error", err)
		}
	})
}

// detach runs fn on its own goroutine with a fresh bounded context, so the
// side effect survives the caller returning but not forever.
func (s *Service) detach(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), detachedTimeout)
		defer cancel()
		fn(ctx)
	}()
}
