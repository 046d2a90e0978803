// Package cli is the terminal shell of the EventHub client: a small screen
// router whose navigation is gated by the auth guards.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/msavelyeva/eventhub/internal/auth"
	"github.com/msavelyeva/eventhub/internal/backend"
	"github.com/msavelyeva/eventhub/internal/config"
	"github.com/msavelyeva/eventhub/internal/guard"
	"github.com/msavelyeva/eventhub/internal/logging"
	"github.com/msavelyeva/eventhub/internal/state"
)

// Screen routes.
const (
	routeSignIn  = "sign-in"
	routeSignUp  = "sign-up"
	routeHome    = "home"
	routeProfile = "profile"
	routeQuit    = "quit"
)

// Input seams, swappable in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getConfirm    = GetConfirm
)

// App wires the backend facade, the auth flow and the state container under
// a screen router.
type App struct {
	state  *state.Container
	flow   *auth.Service
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the full dependency graph from configuration.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	client, err := backend.NewHTTPClient(cfg.Endpoint, cfg.ProjectID, cfg.DatabaseID, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	flow := auth.NewService(client, cfg.UsersCollection, log)
	return &App{
		state:  state.NewContainer(flow),
		flow:   flow,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run restores any existing session, then routes between screens until the
// user quits. Detached side effects are drained before returning.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to EventHub")

	a.state.RestoreSession(ctx)

	route := routeHome
	for route != routeQuit {
		route = a.dispatch(ctx, route)
	}

	fmt.Fprintln(a.out, "Bye!")
	if a.flow != nil {
		a.flow.Wait()
	}
}

// guardFor returns the guard protecting a route, or nil for open routes.
func guardFor(route string) guard.Guard {
	switch route {
	case routeSignIn, routeSignUp:
		return guard.GuestOnly{Home: routeHome}
	case routeHome, routeProfile:
		return guard.UserOnly{SignIn: routeSignIn}
	}
	return nil
}

// dispatch applies the route's guard and renders the screen when allowed.
// It returns the next route.
func (a *App) dispatch(ctx context.Context, route string) string {
	if g := guardFor(route); g != nil {
		switch d := g.Check(a.state.Snapshot()); d.Action {
		case guard.Pending:
			a.waitForAuthCheck(ctx)
			return route
		case guard.Redirect:
			return d.Route
		}
	}

	switch route {
	case routeSignIn:
		return a.signInScreen(ctx)
	case routeSignUp:
		return a.signUpScreen(ctx)
	case routeHome:
		return a.homeScreen(ctx)
	case routeProfile:
		return a.profileScreen(ctx)
	}
	return routeQuit
}

// waitForAuthCheck renders a loading indicator until the first session
// restoration completes. Screens behind a guard are never shown before
// that.
func (a *App) waitForAuthCheck(ctx context.Context) {
	if a.state.Snapshot().AuthChecked {
		return
	}
	fmt.Fprintln(a.out, "Loading...")

	done := make(chan struct{}, 1)
	handler := func(s state.Snapshot) {
		if s.AuthChecked {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}
	if err := a.state.Subscribe(handler); err != nil {
		return
	}
	defer a.state.Unsubscribe(handler)

	// The state may have settled between the snapshot and the subscription.
	if a.state.Snapshot().AuthChecked {
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}
