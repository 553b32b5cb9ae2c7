// Package session implements the guard that supervises one authenticated
// user's time-metered, presence-verified session on a station.
//
// The guard itself is a pure state machine: every transition is driven by
// an explicit tick carrying the elapsed wall-clock time, the outcome of the
// presence check, and any user input. The runner in this package feeds it
// from a real clock, camera, and keyboard; tests feed it directly.
package session

import (
	"context"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
)

type State int

const (
	StateActive State = iota
	StateGracePeriod
	StateSettingsPaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGracePeriod:
		return "grace_period"
	case StateSettingsPaused:
		return "settings_paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records why a session reached StateEnded.
type EndReason string

const (
	ReasonNone         EndReason = ""
	ReasonTimeExpired  EndReason = "time_expired"
	ReasonPresenceLost EndReason = "presence_lost"
	ReasonManualLogout EndReason = "manual_logout"
)

// Input is a user action delivered with a tick.
type Input int

const (
	InputNone Input = iota
	InputQuit
	InputSettings
	InputSettingsDone
)

// Syncer flushes consumed time to the server. The network client satisfies
// this.
type Syncer interface {
	DeductTime(ctx context.Context, username string, seconds float64) error
}

// Guard supervises one session. Not safe for concurrent use; it is driven
// by a single tick loop.
type Guard struct {
	username string
	admin    bool

	// balanceMins mirrors the server-side balance. It is a read-ahead
	// cache: consumption is flushed at least every syncInterval, so the
	// server is never more than one interval behind.
	balanceMins float64

	state     State
	endReason EndReason

	graceElapsed time.Duration
	sinceSync    time.Duration
	unsynced     time.Duration

	syncInterval time.Duration
	gracePeriod  time.Duration

	syncer Syncer
	logger logging.Logger
}

type Params struct {
	Username     string
	Admin        bool
	BalanceMins  float64
	SyncInterval time.Duration
	GracePeriod  time.Duration
	Syncer       Syncer
	Logger       logging.Logger
}

// NewGuard constructs a guard in StateActive for a freshly authenticated
// user.
func NewGuard(p Params) *Guard {
	return &Guard{
		username:     p.Username,
		admin:        p.Admin,
		balanceMins:  p.BalanceMins,
		state:        StateActive,
		syncInterval: p.SyncInterval,
		gracePeriod:  p.GracePeriod,
		syncer:       p.Syncer,
		logger:       p.Logger.With("module", "session_guard", "username", p.Username),
	}
}

func (g *Guard) State() State         { return g.state }
func (g *Guard) EndReason() EndReason { return g.endReason }
func (g *Guard) Username() string     { return g.username }

// BalanceMins returns the local balance mirror, clamped for display.
func (g *Guard) BalanceMins() float64 {
	if g.balanceMins < 0 {
		return 0
	}
	return g.balanceMins
}

// GraceRemaining reports how long the user may stay absent before the
// session ends. Meaningful only in StateGracePeriod.
func (g *Guard) GraceRemaining() time.Duration {
	remaining := g.gracePeriod - g.graceElapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetUsername renames the session subject after a profile change so later
// balance flushes hit the right row.
func (g *Guard) SetUsername(username string) {
	g.username = username
	g.logger = g.logger.With("renamed_to", username)
}

// Tick advances the state machine by one step.
//
// elapsed is the wall-clock time since the previous tick, present is the
// outcome of the presence check for the current frame, and input is the
// user action observed during the interval (InputNone if none).
//
// Admin sessions skip time metering and presence checking entirely; only
// InputQuit ends them.
func (g *Guard) Tick(ctx context.Context, elapsed time.Duration, present bool, input Input) State {
	if g.state == StateEnded {
		return g.state
	}

	if input == InputQuit {
		g.end(ctx, ReasonManualLogout)
		return g.state
	}

	if g.state == StateSettingsPaused {
		// the paused interval is free: elapsed is deliberately dropped
		if input == InputSettingsDone {
			g.state = StateActive
			g.graceElapsed = 0
		}
		return g.state
	}

	if input == InputSettings {
		g.state = StateSettingsPaused
		return g.state
	}

	if g.admin {
		return g.state
	}

	// time metering
	g.balanceMins -= elapsed.Minutes()
	g.unsynced += elapsed
	g.sinceSync += elapsed

	if g.sinceSync >= g.syncInterval {
		g.flush(ctx)
	}

	if g.balanceMins <= 0 {
		g.end(ctx, ReasonTimeExpired)
		return g.state
	}

	// presence verification
	if present {
		g.state = StateActive
		g.graceElapsed = 0
		return g.state
	}

	if g.state == StateActive {
		g.state = StateGracePeriod
		g.graceElapsed = 0
		return g.state
	}

	g.graceElapsed += elapsed
	if g.graceElapsed > g.gracePeriod {
		g.end(ctx, ReasonPresenceLost)
	}
	return g.state
}

// flush reports the unsynced interval to the server. On failure the
// interval stays accumulated and rides along with the next flush, so a
// transient outage delays deductions instead of losing them.
func (g *Guard) flush(ctx context.Context) {
	g.sinceSync = 0

	seconds := g.unsynced.Seconds()
	if seconds <= 0 {
		return
	}

	if err := g.syncer.DeductTime(ctx, g.username, seconds); err != nil {
		g.logger.Warn(ctx, "balance sync failed, will retry", "error", err)
		return
	}
	g.logger.Debug(ctx, "balance flushed", "seconds", seconds)
	g.unsynced = 0
}

// end performs the final balance flush and parks the machine in
// StateEnded.
func (g *Guard) end(ctx context.Context, reason EndReason) {
	if !g.admin {
		g.flush(ctx)
	}
	g.state = StateEnded
	g.endReason = reason
	g.logger.Info(ctx, "session ended", "reason", string(reason))
}
