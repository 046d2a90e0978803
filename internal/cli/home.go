package cli

import (
	"context"
	"fmt"
)

// homeScreen is the authenticated landing screen.
func (a *App) homeScreen(ctx context.Context) string {
	snap := a.state.Snapshot()
	if snap.User != nil {
		fmt.Fprintf(a.out, "\nHello, %s!\n", snap.User.Name)
	}
	fmt.Fprintln(a.out, "Commands: profile, signout, quit")

	cmd, err := getSimpleText(a.reader, "home", a.out)
	if err != nil {
		return routeQuit
	}

	switch cmd {
	case "profile":
		return routeProfile
	case "signout":
		_ = a.state.SignOut(ctx)
		fmt.Fprintln(a.out, "Signed out.")
		return routeSignIn
	case "quit", "exit":
		return routeQuit
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return routeHome
	}
}
