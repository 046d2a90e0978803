package cli

import (
	"context"
	"fmt"

	"github.com/msavelyeva/eventhub/internal/validation"
)

// signInScreen collects credentials and runs the sign-in flow. Validation
// here is limited to the e-mail shape; everything else is the backend's
// call.
func (a *App) signInScreen(ctx context.Context) string {
	fmt.Fprintln(a.out, "\n-- Sign in -- (leave email empty to create an account)")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return routeQuit
	}
	if email == "" {
		return routeSignUp
	}
	if !validation.Email(email) {
		fmt.Fprintln(a.out, "That does not look like an email address.")
		return routeSignIn
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return routeQuit
	}

	if err := a.state.SignIn(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, "Sign in failed:", err)
		return routeSignIn
	}
	return routeHome
}
