package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/msavelyeva/eventhub/internal/models"
)

// profileScreen shows the signed-in user's profile and offers edits and
// account deletion.
func (a *App) profileScreen(ctx context.Context) string {
	snap := a.state.Snapshot()
	if snap.User == nil {
		return routeSignIn
	}
	printProfile(a.out, snap.User)

	fmt.Fprintln(a.out, "Commands: edit-bio, edit-phone, refresh, delete-account, back, quit")
	cmd, err := getSimpleText(a.reader, "profile", a.out)
	if err != nil {
		return routeQuit
	}

	switch cmd {
	case "edit-bio":
		return a.editField(ctx, "New bio", "bio")
	case "edit-phone":
		return a.editField(ctx, "New phone number", "phoneNumber")
	case "refresh":
		a.state.RefreshUser(ctx)
		return routeProfile
	case "delete-account":
		return a.deleteAccount(ctx)
	case "back":
		return routeHome
	case "quit", "exit":
		return routeQuit
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return routeProfile
	}
}

func (a *App) editField(ctx context.Context, prompt, field string) string {
	value, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return routeQuit
	}
	if err := a.state.UpdateUser(ctx, map[string]any{field: value}); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
	}
	return routeProfile
}

func (a *App) deleteAccount(ctx context.Context) string {
	confirmed, err := getConfirm(a.reader, "Delete your account? This cannot be undone.", a.out)
	if err != nil {
		return routeQuit
	}
	if !confirmed {
		return routeProfile
	}
	if err := a.state.DeleteAccount(ctx); err != nil {
		fmt.Fprintln(a.out, "Deletion failed:", err)
		return routeProfile
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return routeSignIn
}

func printProfile(w io.Writer, u *models.Profile) {
	fmt.Fprintf(w, "\n-- %s --\n", u.Name)
	fmt.Fprintln(w, "Email:      ", u.Email)
	fmt.Fprintln(w, "Role:       ", u.Role)
	if len(u.Interests) > 0 {
		fmt.Fprintln(w, "Interests:  ", joinInterests(u.Interests))
	}
	if u.Bio != "" {
		fmt.Fprintln(w, "Bio:        ", u.Bio)
	}
	if u.PhoneNumber != "" {
		fmt.Fprintln(w, "Phone:      ", u.PhoneNumber)
	}
	if u.Location != nil {
		fmt.Fprintf(w, "Location:    %s, %s\n", u.Location.City, u.Location.Country)
	}
	fmt.Fprintln(w, "Logins:     ", u.LoginCount)
	if !u.LastLoginAt.IsZero() {
		fmt.Fprintln(w, "Last login: ", u.LastLoginAt.Format("2006-01-02 15:04"))
	}
}
