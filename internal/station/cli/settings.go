package cli

import (
	"context"
	"fmt"
)

// runSettings shows the in-session settings menu. Time metering is paused
// while it runs. It returns the current username, which may differ from
// the one passed in after a rename.
func (a *App) runSettings(ctx context.Context, username string) string {
	for {
		fmt.Fprintf(a.out, "\n--- Settings (%s) ---\n", username)
		fmt.Fprintln(a.out, "1) Change full name")
		fmt.Fprintln(a.out, "2) Change password")
		fmt.Fprintln(a.out, "3) Change username")
		fmt.Fprintln(a.out, "4) Re-scan face")
		fmt.Fprintln(a.out, "5) Back to session")

		choice, err := getSimpleText(a.reader, "Choose:", a.out)
		if err != nil {
			return username
		}

		switch choice {
		case "1":
			a.changeProfileField(ctx, username, "full_name", "New full name:")
		case "2":
			a.changePassword(ctx, username)
		case "3":
			if updated := a.changeUsername(ctx, username); updated != "" {
				username = updated
			}
		case "4":
			a.rescanFace(ctx, username)
		case "5", "":
			return username
		default:
			fmt.Fprintln(a.out, "Unknown choice.")
		}
	}
}

func (a *App) changeProfileField(ctx context.Context, username, field, prompt string) {
	value, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || value == "" {
		return
	}
	if err := a.client.UpdateProfile(ctx, username, field, value); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Updated.")
}

func (a *App) changePassword(ctx context.Context, username string) {
	fmt.Fprintln(a.out, "New password.")
	first, err := getPassword(a.out)
	if err != nil || len(first) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Repeat it.")
	second, err := getPassword(a.out)
	if err != nil {
		return
	}
	if string(first) != string(second) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return
	}
	if err := a.client.UpdateProfile(ctx, username, "password", string(first)); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}

// changeUsername renames the account and returns the new name on success
// so the session guard flushes against the right row.
func (a *App) changeUsername(ctx context.Context, username string) string {
	value, err := getSimpleText(a.reader, "New username:", a.out)
	if err != nil || value == "" {
		return ""
	}
	if err := a.client.UpdateProfile(ctx, username, "username", value); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return ""
	}
	fmt.Fprintln(a.out, "Username changed.")
	return value
}

// rescanFace captures a fresh gallery and uploads it. The server verifies
// the password again before replacing stored biometrics.
func (a *App) rescanFace(ctx context.Context, username string) {
	gallery, err := a.captureGallery(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Face capture failed:", err)
		return
	}

	fmt.Fprintln(a.out, "Confirm with your password.")
	password, err := getPassword(a.out)
	if err != nil {
		return
	}

	if err := a.client.UpdateFace(ctx, username, string(password), gallery); err != nil {
		fmt.Fprintln(a.out, "Face update failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Face updated.")
}
