package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
)

type fakeSyncer struct {
	calls []float64
	users []string
	err   error
}

func (f *fakeSyncer) DeductTime(ctx context.Context, username string, seconds float64) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, seconds)
	f.users = append(f.users, username)
	return nil
}

func newTestGuard(t *testing.T, balanceMins float64, admin bool, s Syncer) *Guard {
	t.Helper()
	return NewGuard(Params{
		Username:     "alice",
		Admin:        admin,
		BalanceMins:  balanceMins,
		SyncInterval: 5 * time.Second,
		GracePeriod:  2 * time.Second,
		Syncer:       s,
		Logger:       logging.NewNopLogger(),
	})
}

func TestGuard_QuitFlushesAndEnds(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	g.Tick(ctx, time.Second, true, InputNone)
	state := g.Tick(ctx, time.Second, true, InputQuit)

	if state != StateEnded || g.EndReason() != ReasonManualLogout {
		t.Fatalf("expected manual logout, got state=%v reason=%q", state, g.EndReason())
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != 1.0 {
		t.Fatalf("expected final flush of 1s, got %v", syncer.calls)
	}
}

func TestGuard_TimeExpiry(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 1.0/60.0, false, syncer) // one second of balance

	state := g.Tick(ctx, 2*time.Second, true, InputNone)

	if state != StateEnded || g.EndReason() != ReasonTimeExpired {
		t.Fatalf("expected time expiry, got state=%v reason=%q", state, g.EndReason())
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != 2.0 {
		t.Fatalf("expected final flush of the consumed 2s, got %v", syncer.calls)
	}
	if g.BalanceMins() != 0 {
		t.Fatalf("displayed balance must clamp at zero, got %v", g.BalanceMins())
	}
}

func TestGuard_GracePeriodRecovery(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard(t, 10, false, &fakeSyncer{})

	if state := g.Tick(ctx, 100*time.Millisecond, false, InputNone); state != StateGracePeriod {
		t.Fatalf("absence from active should enter grace, got %v", state)
	}

	// stay absent, but within the grace window
	if state := g.Tick(ctx, 1900*time.Millisecond, false, InputNone); state != StateGracePeriod {
		t.Fatalf("absence within grace should stay in grace, got %v", state)
	}

	if state := g.Tick(ctx, 100*time.Millisecond, true, InputNone); state != StateActive {
		t.Fatalf("return during grace should reactivate, got %v", state)
	}

	// the grace clock must have been reset by the recovery
	g.Tick(ctx, 100*time.Millisecond, false, InputNone)
	if remaining := g.GraceRemaining(); remaining != 2*time.Second {
		t.Fatalf("grace clock not reset after recovery: remaining=%v", remaining)
	}
}

func TestGuard_PresenceLost(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	g.Tick(ctx, 100*time.Millisecond, false, InputNone)
	state := g.Tick(ctx, 2100*time.Millisecond, false, InputNone)

	if state != StateEnded || g.EndReason() != ReasonPresenceLost {
		t.Fatalf("expected presence_lost, got state=%v reason=%q", state, g.EndReason())
	}
	if len(syncer.calls) == 0 {
		t.Fatal("ending on presence loss must still flush consumed time")
	}
}

func TestGuard_SettingsPauseIsFree(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	if state := g.Tick(ctx, 0, true, InputSettings); state != StateSettingsPaused {
		t.Fatalf("expected settings pause, got %v", state)
	}

	// an hour in the menu costs nothing and cannot end the session
	if state := g.Tick(ctx, time.Hour, false, InputNone); state != StateSettingsPaused {
		t.Fatalf("paused session must ignore elapsed time and presence, got %v", state)
	}

	if state := g.Tick(ctx, time.Hour, false, InputSettingsDone); state != StateActive {
		t.Fatalf("expected return to active, got %v", state)
	}
	if g.BalanceMins() != 10 {
		t.Fatalf("paused time was charged: balance=%v", g.BalanceMins())
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("no deduction expected while paused, got %v", syncer.calls)
	}
}

func TestGuard_SyncIntervalFlush(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	for i := 0; i < 4; i++ {
		g.Tick(ctx, time.Second, true, InputNone)
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("flush before the sync interval elapsed: %v", syncer.calls)
	}

	g.Tick(ctx, time.Second, true, InputNone)
	if len(syncer.calls) != 1 || syncer.calls[0] != 5.0 {
		t.Fatalf("expected one 5s flush, got %v", syncer.calls)
	}
	if syncer.users[0] != "alice" {
		t.Fatalf("flush must target the session user, got %q", syncer.users[0])
	}
}

func TestGuard_FailedSyncRetriesWithAccumulatedTime(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{err: errors.New("server down")}
	g := newTestGuard(t, 10, false, syncer)

	// first flush fails, the interval stays accumulated
	for i := 0; i < 5; i++ {
		g.Tick(ctx, time.Second, true, InputNone)
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("failed flush must not record a deduction, got %v", syncer.calls)
	}

	// server back, next flush carries both intervals
	syncer.err = nil
	for i := 0; i < 5; i++ {
		g.Tick(ctx, time.Second, true, InputNone)
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != 10.0 {
		t.Fatalf("expected one combined 10s flush, got %v", syncer.calls)
	}
}

func TestGuard_AdminBypassesMeteringAndPresence(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 0, true, syncer)

	for i := 0; i < 100; i++ {
		if state := g.Tick(ctx, time.Minute, false, InputNone); state != StateActive {
			t.Fatalf("admin session must stay active, got %v on tick %d", state, i)
		}
	}

	state := g.Tick(ctx, time.Minute, false, InputQuit)
	if state != StateEnded || g.EndReason() != ReasonManualLogout {
		t.Fatalf("expected manual logout, got state=%v reason=%q", state, g.EndReason())
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("admin sessions never deduct time, got %v", syncer.calls)
	}
}

func TestGuard_RenameRedirectsFlush(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	g.Tick(ctx, time.Second, true, InputNone)
	g.SetUsername("alice2")
	g.Tick(ctx, time.Second, true, InputQuit)

	if len(syncer.users) != 1 || syncer.users[0] != "alice2" {
		t.Fatalf("flush after rename must use the new username, got %v", syncer.users)
	}
}

func TestGuard_TickAfterEndIsInert(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{}
	g := newTestGuard(t, 10, false, syncer)

	g.Tick(ctx, 0, true, InputQuit)
	flushes := len(syncer.calls)

	if state := g.Tick(ctx, time.Minute, true, InputNone); state != StateEnded {
		t.Fatalf("ended guard must stay ended, got %v", state)
	}
	if len(syncer.calls) != flushes {
		t.Fatal("ended guard must not flush again")
	}
}
