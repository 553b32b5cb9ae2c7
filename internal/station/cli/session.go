package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/session"
)

const sessionTickInterval = 250 * time.Millisecond

// nopInput is the input source for stations whose terminal cannot enter
// raw mode. Such sessions end only on time expiry or presence loss.
type nopInput struct{}

func (nopInput) Poll() session.Input { return session.InputNone }

// runSession supervises one authenticated user until the guard ends the
// session, then reports why.
func (a *App) runSession(ctx context.Context, user protocol.UserInfo) {
	guard := session.NewGuard(session.Params{
		Username:     user.Username,
		Admin:        user.Role == roleRoot,
		BalanceMins:  user.TimeBalance,
		SyncInterval: a.config.SyncInterval,
		GracePeriod:  a.config.GracePeriod,
		Syncer:       a.client,
		Logger:       a.logger,
	})

	var input session.InputSource = nopInput{}
	poller, err := NewTermPoller(int(os.Stdin.Fd()))
	if err != nil {
		a.logger.Warn(ctx, "raw terminal unavailable, session keys disabled", "error", err)
	} else {
		input = poller
		defer poller.Close()
	}

	fmt.Fprintln(a.out, "Session started. Keys: q = log out, s = settings.")

	runner := session.NewRunner(session.RunnerParams{
		Guard:     guard,
		Camera:    a.camera,
		Matcher:   a.matcher,
		Gallery:   user.FaceEncoding,
		Tolerance: a.config.MatchTolerance,
		Input:     input,
		Settings: func(ctx context.Context, username string) string {
			if poller != nil {
				poller.Suspend()
				defer func() {
					if err := poller.Resume(); err != nil {
						a.logger.Warn(ctx, "could not re-enter raw mode", "error", err)
					}
				}()
			}
			return a.runSettings(ctx, username)
		},
		HUD:          a.newHUD(),
		TickInterval: sessionTickInterval,
		Logger:       a.logger,
	})

	reason, _ := runner.Run(ctx)
	if poller != nil {
		poller.Suspend()
	}

	fmt.Fprintln(a.out)
	switch reason {
	case session.ReasonTimeExpired:
		fmt.Fprintln(a.out, "Your time is up. Rent more time to continue.")
	case session.ReasonPresenceLost:
		fmt.Fprintln(a.out, "You left the station, so the session was closed.")
	default:
		fmt.Fprintln(a.out, "Logged out.")
	}
}

// newHUD returns a status-line renderer. The line is rewritten in place
// with a carriage return and only when its content changes, so the raw
// terminal is not flooded at tick rate.
func (a *App) newHUD() session.HUDFunc {
	var last string
	return func(g *session.Guard) {
		var line string
		switch g.State() {
		case session.StateGracePeriod:
			line = fmt.Sprintf("Presence lost! Return within %.1fs", g.GraceRemaining().Seconds())
		case session.StateActive:
			line = fmt.Sprintf("Time remaining: %s", formatMinutes(g.BalanceMins()))
		default:
			return
		}
		if line == last {
			return
		}
		last = line
		fmt.Fprintf(a.out, "\r%-48s", line)
	}
}

func formatMinutes(mins float64) string {
	total := int(mins * 60)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
