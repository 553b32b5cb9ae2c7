package session

import (
	"context"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/biometric"
)

// InputSource delivers user actions without blocking the tick loop.
type InputSource interface {
	Poll() Input
}

// SettingsFunc runs the settings interaction while the guard is paused and
// returns the (possibly renamed) username.
type SettingsFunc func(ctx context.Context, username string) string

// HUDFunc renders the per-tick status line (remaining time, grace
// countdown). Optional.
type HUDFunc func(g *Guard)

// Runner drives a Guard from the real clock, the camera, and the keyboard.
// One logical thread of control: presence checks and balance syncs happen
// synchronously inside the tick, so a tick lasts as long as capture plus
// one network round-trip at worst.
type Runner struct {
	guard        *Guard
	camera       biometric.Camera
	matcher      biometric.Matcher
	gallery      protocol.Gallery
	tolerance    float64
	input        InputSource
	settings     SettingsFunc
	hud          HUDFunc
	tickInterval time.Duration
	now          func() time.Time
	logger       logging.Logger
}

type RunnerParams struct {
	Guard        *Guard
	Camera       biometric.Camera
	Matcher      biometric.Matcher
	Gallery      protocol.Gallery
	Tolerance    float64
	Input        InputSource
	Settings     SettingsFunc
	HUD          HUDFunc
	TickInterval time.Duration
	Logger       logging.Logger
}

func NewRunner(p RunnerParams) *Runner {
	return &Runner{
		guard:        p.Guard,
		camera:       p.Camera,
		matcher:      p.Matcher,
		gallery:      p.Gallery,
		tolerance:    p.Tolerance,
		input:        p.Input,
		settings:     p.Settings,
		hud:          p.HUD,
		tickInterval: p.TickInterval,
		now:          time.Now,
		logger:       p.Logger.With("module", "session_runner"),
	}
}

// Run loops until the guard ends and returns the end reason together with
// the final username (profile edits during settings may have renamed it).
func (r *Runner) Run(ctx context.Context) (EndReason, string) {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	last := r.now()

	for r.guard.State() != StateEnded {
		select {
		case <-ctx.Done():
			r.guard.Tick(ctx, 0, true, InputQuit)

		case <-ticker.C:
			now := r.now()
			elapsed := now.Sub(last)
			last = now

			state := r.guard.Tick(ctx, elapsed, r.checkPresence(ctx), r.input.Poll())

			if state == StateSettingsPaused {
				r.runSettings(ctx)
				// restart timing so the paused interval is not charged
				last = r.now()
			}

			if r.hud != nil {
				r.hud(r.guard)
			}
		}
	}

	return r.guard.EndReason(), r.guard.Username()
}

// checkPresence verifies the user is still in front of the station.
// Users without a stored gallery (typically admins) and stations whose
// capture fails are treated as present: absence can only be established by
// an actual non-matching frame.
func (r *Runner) checkPresence(ctx context.Context) bool {
	if len(r.gallery) == 0 {
		return true
	}

	sample, err := r.camera.Capture(ctx)
	if err != nil {
		return true
	}
	if sample == nil {
		return false
	}

	return r.matcher.Match(sample, r.gallery, r.tolerance)
}

func (r *Runner) runSettings(ctx context.Context) {
	r.camera.Release()

	if r.settings != nil {
		updated := r.settings(ctx, r.guard.Username())
		if updated != "" && updated != r.guard.Username() {
			r.guard.SetUsername(updated)
		}
	}

	r.guard.Tick(ctx, 0, true, InputSettingsDone)
}
