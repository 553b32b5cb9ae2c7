// Package cli implements the interactive kiosk loop for a station: the
// lock screen, face and manual login, the rental flow, the supervised
// session, the settings menu, and the root admin panel.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/biometric"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/config"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/netclient"
)

const roleRoot = "root"

// test seams
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// ServerClient is the slice of the network client the kiosk flows consume.
type ServerClient interface {
	Login(ctx context.Context, username, password, stationID string) (*protocol.Response, error)
	Logout()
	FetchActiveUsers(ctx context.Context) ([]protocol.UserInfo, error)
	FetchAllUsers(ctx context.Context) ([]protocol.UserInfo, error)
	DeductTime(ctx context.Context, username string, seconds float64) error
	AddTime(ctx context.Context, username string, minutes float64) error
	UpdateFace(ctx context.Context, username, password string, gallery protocol.Gallery) error
	UpdateProfile(ctx context.Context, username, field, value string) error
	CreateUser(ctx context.Context, username, password, fullName, role string) error
	DeleteUser(ctx context.Context, username string) error
	RegisterStation(ctx context.Context, id, name string) error
}

var _ ServerClient = (*netclient.Client)(nil)

// App drives one kiosk station end to end. All interaction goes through
// reader/out so tests can script it.
type App struct {
	config  *config.Config
	client  ServerClient
	camera  biometric.Camera
	matcher biometric.Matcher
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config, client ServerClient, camera biometric.Camera,
	matcher biometric.Matcher, logger logging.Logger) *App {
	return &App{
		config:  cfg,
		client:  client,
		camera:  camera,
		matcher: matcher,
		logger:  logger.With("module", "station_cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run loops over lock screen, authentication, and session until the
// context is cancelled or the operator types exit.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		cmd, err := getSimpleText(a.reader,
			"\n=== Station locked. Press Enter to begin (type 'exit' to shut down). ===", a.out)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if strings.EqualFold(cmd, "exit") {
			return nil
		}

		user, ok := a.authenticate(ctx)
		if !ok {
			continue
		}

		if user.Role == roleRoot {
			a.runAdminPanel(ctx, user.Username)
			a.client.Logout()
			continue
		}

		if user.TimeBalance <= 0 {
			added, ok := a.rentTime(ctx, user.Username)
			if !ok {
				a.client.Logout()
				continue
			}
			user.TimeBalance += added
		}

		a.runSession(ctx, user)
		a.client.Logout()
	}
}

// authenticate tries the wake-up face scan first and falls back to manual
// credentials.
func (a *App) authenticate(ctx context.Context) (protocol.UserInfo, bool) {
	if user, ok := a.faceLogin(ctx); ok {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", displayName(user))
		return user, true
	}
	return a.manualLogin(ctx)
}

// faceLogin scans for a known face for at most ScanWindow. A match against
// the active-renter roster counts as authentication: the roster record is
// the session's starting state, no credential round-trip happens.
func (a *App) faceLogin(ctx context.Context) (protocol.UserInfo, bool) {
	roster, err := a.client.FetchActiveUsers(ctx)
	if err != nil {
		a.logger.Warn(ctx, "roster fetch failed, face login unavailable", "error", err)
		return protocol.UserInfo{}, false
	}
	if len(roster) == 0 {
		return protocol.UserInfo{}, false
	}

	fmt.Fprintln(a.out, "Looking for your face...")

	deadline := time.Now().Add(a.config.ScanWindow)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return protocol.UserInfo{}, false
		}

		sample, err := a.camera.Capture(ctx)
		if err != nil {
			// no camera on this station, manual login only
			return protocol.UserInfo{}, false
		}
		if sample != nil {
			for _, u := range roster {
				if len(u.FaceEncoding) == 0 {
					continue
				}
				if a.matcher.Match(sample, u.FaceEncoding, a.config.MatchTolerance) {
					return u, true
				}
			}
		}

		time.Sleep(100 * time.Millisecond)
	}

	fmt.Fprintln(a.out, "No match found.")
	return protocol.UserInfo{}, false
}

func (a *App) manualLogin(ctx context.Context) (protocol.UserInfo, bool) {
	username, err := getSimpleText(a.reader, "Username (blank to cancel):", a.out)
	if err != nil || username == "" {
		return protocol.UserInfo{}, false
	}

	password, err := getPassword(a.out)
	if err != nil {
		return protocol.UserInfo{}, false
	}

	resp, err := a.client.Login(ctx, username, string(password), a.config.StationID)
	if err != nil {
		fmt.Fprintln(a.out, "Server unreachable, please try again later.")
		a.logger.Warn(ctx, "login request failed", "error", err)
		return protocol.UserInfo{}, false
	}
	if resp.Status != protocol.StatusSuccess {
		fmt.Fprintln(a.out, resp.Message)
		return protocol.UserInfo{}, false
	}

	return protocol.UserInfo{
		Username:     resp.Username,
		Role:         resp.Role,
		TimeBalance:  resp.TimeBalance,
		FaceEncoding: resp.FaceEncoding,
	}, true
}

func displayName(u protocol.UserInfo) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
