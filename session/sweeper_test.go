package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotspotbill-backend/models"
)

func activeSession(f *fixture, t *testing.T, mac, phone string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.ctrl.RegisterPendingSession(ctx, mac, "10.0.0.5", phone, "1hr"))
	activation, err := f.ctrl.HandlePaymentCallback(ctx, successCallback(phone))
	require.NoError(t, err)
	require.Equal(t, OutcomeActivated, activation.Outcome)
}

func expire(f *fixture, mac string) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	past := time.Now().Add(-time.Minute)
	f.store.rows[mac].ExpiresAt = &past
}

func newSweeper(f *fixture) *Sweeper {
	return NewSweeper(f.store, f.access, time.Hour, time.Hour, testLogger())
}

func TestSweepRevokesExpiredSessions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	activeSession(f, t, "AA:BB:CC:DD:EE:FF", "254700111222")
	expire(f, "aa:bb:cc:dd:ee:ff")

	newSweeper(f).Sweep(ctx)

	rec, err := f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateExpired, rec.State)

	// Logout strictly before delete.
	assert.Equal(t, []string{"create:user1", "login:user1", "logout:user1", "delete:user1"}, f.access.ops)
	assert.Empty(t, f.access.liveCredentials())
}

func TestSweepNeverTouchesUnexpiredSessions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	activeSession(f, t, "AA:BB:CC:DD:EE:FF", "254700111222")
	opsBefore := len(f.access.ops)

	newSweeper(f).Sweep(ctx)

	rec, err := f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateActive, rec.State)
	assert.Len(t, f.access.ops, opsBefore)
}

func TestSweepRetriesAfterAccessControllerFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	activeSession(f, t, "AA:BB:CC:DD:EE:FF", "254700111222")
	expire(f, "aa:bb:cc:dd:ee:ff")
	f.access.failLogoutFor["user1"] = true

	sweeper := newSweeper(f)
	sweeper.Sweep(ctx)

	rec, err := f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateActive, rec.State, "record stays active until successfully revoked")

	// Next cycle, router back up.
	f.access.failLogoutFor["user1"] = false
	sweeper.Sweep(ctx)

	rec, err = f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateExpired, rec.State)
	assert.Empty(t, f.access.liveCredentials())
}

func TestSweepFailureDoesNotAbortOtherRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	activeSession(f, t, "AA:AA:AA:AA:AA:01", "254700111111")
	activeSession(f, t, "AA:AA:AA:AA:AA:02", "254700222222")
	expire(f, "aa:aa:aa:aa:aa:01")
	expire(f, "aa:aa:aa:aa:aa:02")
	f.access.failLogoutFor["user1"] = true

	newSweeper(f).Sweep(ctx)

	broken, err := f.store.ByMAC(ctx, "aa:aa:aa:aa:aa:01")
	require.NoError(t, err)
	assert.Equal(t, models.StateActive, broken.State)

	healthy, err := f.store.ByMAC(ctx, "aa:aa:aa:aa:aa:02")
	require.NoError(t, err)
	assert.Equal(t, models.StateExpired, healthy.State)
}

func TestSweepRevokesStalePendingSessions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.ctrl.RegisterPendingSession(ctx, "AA:BB:CC:DD:EE:FF", "10.0.0.5", "254700111222", "1hr"))

	f.store.mu.Lock()
	f.store.rows["aa:bb:cc:dd:ee:ff"].CreatedAt = time.Now().Add(-2 * time.Hour)
	f.store.mu.Unlock()

	NewSweeper(f.store, f.access, time.Hour, time.Hour, testLogger()).Sweep(ctx)

	rec, err := f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateRevoked, rec.State, "stuck pending sessions are aged out")
	assert.Empty(t, f.access.ops)
}

func TestSweepFreshPendingSessionSurvives(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.ctrl.RegisterPendingSession(ctx, "AA:BB:CC:DD:EE:FF", "10.0.0.5", "254700111222", "1hr"))

	newSweeper(f).Sweep(ctx)

	rec, err := f.store.ByMAC(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingPayment, rec.State)
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	f := newFixture()
	sweeper := NewSweeper(f.store, f.access, 10*time.Millisecond, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
