package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/msavelyeva/eventhub/internal/models"
	"github.com/msavelyeva/eventhub/internal/validation"
)

// signUpScreen collects and validates the signup form, then runs the
// sign-up flow. All password problems are shown at once so the user can fix
// them in a single pass.
func (a *App) signUpScreen(ctx context.Context) string {
	fmt.Fprintln(a.out, "\n-- Create account --")

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return routeQuit
	}
	if ok, reason := validation.Name(name); !ok {
		fmt.Fprintln(a.out, reason)
		return routeSignUp
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return routeQuit
	}
	if !validation.Email(email) {
		fmt.Fprintln(a.out, "That does not look like an email address.")
		return routeSignUp
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return routeQuit
	}
	if res := validation.Password(password); !res.Valid {
		for _, p := range res.Problems {
			fmt.Fprintln(a.out, "-", p)
		}
		return routeSignUp
	}

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return routeQuit
	}
	if confirm != password {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return routeSignUp
	}

	interests, err := a.askInterests()
	if err != nil {
		return routeQuit
	}

	accepted, err := getConfirm(a.reader, "Accept the terms and conditions?", a.out)
	if err != nil {
		return routeQuit
	}
	if !accepted {
		fmt.Fprintln(a.out, "You must accept the terms to create an account.")
		return routeSignUp
	}

	data := models.SignupData{
		Name:            strings.TrimSpace(name),
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		AcceptTerms:     accepted,
		Interests:       interests,
	}
	if err := a.state.SignUp(ctx, data); err != nil {
		fmt.Fprintln(a.out, "Sign up failed:", err)
		return routeSignUp
	}

	fmt.Fprintln(a.out, "Welcome,", data.Name+"!")
	return routeHome
}

// askInterests reads an optional comma-separated list of interest tags.
// Unknown tags are reported and dropped.
func (a *App) askInterests() ([]models.Interest, error) {
	fmt.Fprintln(a.out, "Known interests:", joinInterests(models.AllInterests))
	raw, err := getSimpleText(a.reader, "Your interests (comma separated, optional)", a.out)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	known := make(map[models.Interest]bool, len(models.AllInterests))
	for _, i := range models.AllInterests {
		known[i] = true
	}

	var interests []models.Interest
	for _, part := range strings.Split(raw, ",") {
		tag := models.Interest(strings.ToLower(strings.TrimSpace(part)))
		if tag == "" {
			continue
		}
		if !known[tag] {
			fmt.Fprintln(a.out, "Skipping unknown interest:", tag)
			continue
		}
		interests = append(interests, tag)
	}
	return interests, nil
}

func joinInterests(list []models.Interest) string {
	parts := make([]string, len(list))
	for i, tag := range list {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}
