package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

// runAdminPanel is the management loop shown to a root login instead of a
// metered session.
func (a *App) runAdminPanel(ctx context.Context, adminUsername string) {
	for {
		fmt.Fprintf(a.out, "\n--- Admin Panel (%s) ---\n", adminUsername)
		fmt.Fprintln(a.out, "1) List users")
		fmt.Fprintln(a.out, "2) Create user")
		fmt.Fprintln(a.out, "3) Delete user")
		fmt.Fprintln(a.out, "4) Add time")
		fmt.Fprintln(a.out, "5) Remove time")
		fmt.Fprintln(a.out, "6) Edit user details")
		fmt.Fprintln(a.out, "7) Re-scan user face")
		fmt.Fprintln(a.out, "8) Register this station")
		fmt.Fprintln(a.out, "9) Use this station")
		fmt.Fprintln(a.out, "0) Log out")

		choice, err := getSimpleText(a.reader, "Choose:", a.out)
		if err != nil {
			return
		}

		switch choice {
		case "1":
			a.listUsers(ctx)
		case "2":
			a.createUser(ctx)
		case "3":
			a.deleteUser(ctx, adminUsername)
		case "4":
			a.adjustTime(ctx, 1)
		case "5":
			a.adjustTime(ctx, -1)
		case "6":
			a.editUser(ctx)
		case "7":
			a.adminRescanFace(ctx)
		case "8":
			a.registerStation(ctx)
		case "9":
			a.runSession(ctx, protocol.UserInfo{Username: adminUsername, Role: roleRoot})
		case "0", "":
			return
		default:
			fmt.Fprintln(a.out, "Unknown choice.")
		}
	}
}

func (a *App) listUsers(ctx context.Context) {
	users, err := a.client.FetchAllUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not fetch users:", err)
		return
	}

	fmt.Fprintf(a.out, "%-20s %-8s %-24s %10s %6s\n", "USERNAME", "ROLE", "FULL NAME", "MINUTES", "FACE")
	for _, u := range users {
		face := "no"
		if len(u.FaceEncoding) > 0 {
			face = "yes"
		}
		fmt.Fprintf(a.out, "%-20s %-8s %-24s %10.1f %6s\n", u.Username, u.Role, u.FullName, u.TimeBalance, face)
	}
}

func (a *App) createUser(ctx context.Context) {
	username, err := getSimpleText(a.reader, "New username:", a.out)
	if err != nil || username == "" {
		return
	}

	password, err := getPassword(a.out)
	if err != nil || len(password) == 0 {
		return
	}

	fullName, err := getSimpleText(a.reader, "Full name:", a.out)
	if err != nil {
		return
	}

	role, err := getSimpleText(a.reader, "Role (user/root, default user):", a.out)
	if err != nil {
		return
	}
	if role == "" {
		role = "user"
	}

	if err := a.client.CreateUser(ctx, username, string(password), fullName, role); err != nil {
		fmt.Fprintln(a.out, "Create failed:", err)
		return
	}
	fmt.Fprintln(a.out, "User created.")
}

func (a *App) deleteUser(ctx context.Context, adminUsername string) {
	username, err := getSimpleText(a.reader, "Username to delete:", a.out)
	if err != nil || username == "" {
		return
	}
	if strings.EqualFold(username, adminUsername) {
		fmt.Fprintln(a.out, "You cannot delete the account you are logged in with.")
		return
	}

	confirm, err := getSimpleText(a.reader,
		fmt.Sprintf("Really delete %q? (y/n)", username), a.out)
	if err != nil || !strings.EqualFold(confirm, "y") {
		return
	}

	if err := a.client.DeleteUser(ctx, username); err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		return
	}
	fmt.Fprintln(a.out, "User deleted.")
}

// adjustTime adds minutes when sign is positive and removes them when
// negative. Removal goes through the same deduction path sessions use, so
// the balance never drops below zero.
func (a *App) adjustTime(ctx context.Context, sign float64) {
	username, err := getSimpleText(a.reader, "Username:", a.out)
	if err != nil || username == "" {
		return
	}

	raw, err := getSimpleText(a.reader, "Minutes:", a.out)
	if err != nil || raw == "" {
		return
	}
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil || minutes <= 0 {
		fmt.Fprintln(a.out, "Enter a positive number of minutes.")
		return
	}

	if sign > 0 {
		err = a.client.AddTime(ctx, username, minutes)
	} else {
		err = a.client.DeductTime(ctx, username, minutes*60)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Adjustment failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Balance updated.")
}

func (a *App) editUser(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Username to edit:", a.out)
	if err != nil || username == "" {
		return
	}

	field, err := getSimpleText(a.reader, "Field (full_name/username/password/role):", a.out)
	if err != nil || field == "" {
		return
	}

	var value string
	if field == "password" {
		pw, err := getPassword(a.out)
		if err != nil || len(pw) == 0 {
			return
		}
		value = string(pw)
	} else {
		value, err = getSimpleText(a.reader, "New value:", a.out)
		if err != nil || value == "" {
			return
		}
	}

	if err := a.client.UpdateProfile(ctx, username, field, value); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return
	}
	fmt.Fprintln(a.out, "User updated.")
}

// adminRescanFace captures a new gallery for any user. The server still
// demands that user's password before replacing biometrics, so the admin
// needs the user present (or their credentials).
func (a *App) adminRescanFace(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Username to re-scan:", a.out)
	if err != nil || username == "" {
		return
	}

	gallery, err := a.captureGallery(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Face capture failed:", err)
		return
	}

	fmt.Fprintf(a.out, "Password for %s.\n", username)
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

func (a *App) registerStation(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Station display name:", a.out)
	if err != nil || name == "" {
		return
	}

	if err := a.client.RegisterStation(ctx, a.config.StationID, name); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return
	}
	fmt.Fprintf(a.out, "Station %s registered as %q.\n", a.config.StationID, name)
}
