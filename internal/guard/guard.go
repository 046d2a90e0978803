// Package guard decides whether a screen may be shown for the current auth
// state. Guards are purely reactive: they inspect a state snapshot and never
// perform network calls themselves.
package guard

import "github.com/msavelyeva/eventhub/internal/state"

// Action is the outcome of a guard check.
type Action int

const (
	// Pending means the auth check has not completed yet; the caller shows
	// a loading indicator instead of the screen.
	Pending Action = iota
	// Allow means the screen may be rendered.
	Allow
	// Redirect means the caller must navigate to Decision.Route instead.
	Redirect
)

// Decision carries the action and, for redirects, the target route.
type Decision struct {
	Action Action
	Route  string
}

// Guard reacts to an auth state snapshot.
type Guard interface {
	Check(s state.Snapshot) Decision
}

// GuestOnly protects screens meant for signed-out visitors (sign-in,
// sign-up). Once a user is resolved it redirects to Home; guest-only content
// is never shown to a signed-in user.
type GuestOnly struct {
	// Home is the route signed-in users are sent to.
	Home string
}

func (g GuestOnly) Check(s state.Snapshot) Decision {
	if !s.AuthChecked {
		return Decision{Action: Pending}
	}
	if s.User != nil {
		return Decision{Action: Redirect, Route: g.Home}
	}
	return Decision{Action: Allow}
}

// UserOnly protects screens that require a signed-in user; guests are
// redirected to SignIn.
type UserOnly struct {
	// SignIn is the route guests are sent to.
	SignIn string
}

func (g UserOnly) Check(s state.Snapshot) Decision {
	if !s.AuthChecked {
		return Decision{Action: Pending}
	}
	if s.User == nil {
		return Decision{Action: Redirect, Route: g.SignIn}
	}
	return Decision{Action: Allow}
}
