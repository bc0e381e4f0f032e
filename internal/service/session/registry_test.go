package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

func newTestRegistry(timeout time.Duration) (*Registry, *time.Time) {
	r := NewRegistry(timeout, time.Minute, logger.NewDiscard())
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRegisterSupersedesPrevious(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(10 * time.Minute)

	first := r.Register(ctx, "patricia", types.UserTypeBeeZero)
	second := r.Register(ctx, "patricia", types.UserTypeBeeZero)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.False(t, r.IsValid("patricia", first.SessionID), "old session must be dead")
	assert.True(t, r.IsValid("patricia", second.SessionID))
	assert.Equal(t, 1, r.Stats().ActiveSessions)
}

func TestIsValidExpiry(t *testing.T) {
	ctx := context.Background()
	r, now := newTestRegistry(10 * time.Minute)

	s := r.Register(ctx, "carla", types.UserTypeEcodelivery)
	assert.True(t, r.IsValid("carla", s.SessionID))

	*now = now.Add(11 * time.Minute)
	assert.False(t, r.IsValid("carla", s.SessionID))

	// expired session is gone, not just rejected
	_, ok := r.Get("carla")
	assert.False(t, ok)
}

func TestTouchExtendsSession(t *testing.T) {
	ctx := context.Background()
	r, now := newTestRegistry(10 * time.Minute)

	s := r.Register(ctx, "carla", types.UserTypeEcodelivery)

	*now = now.Add(9 * time.Minute)
	r.Touch("carla")

	*now = now.Add(9 * time.Minute)
	assert.True(t, r.IsValid("carla", s.SessionID), "touch must reset the inactivity window")
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(10 * time.Minute)

	s := r.Register(ctx, "juan", types.UserTypeOperador)
	assert.True(t, r.Close("juan"))
	assert.False(t, r.Close("juan"))
	assert.False(t, r.IsValid("juan", s.SessionID))
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	r, now := newTestRegistry(10 * time.Minute)

	r.Register(ctx, "stale", types.UserTypeBeeZero)
	*now = now.Add(11 * time.Minute)
	fresh := r.Register(ctx, "fresh", types.UserTypeBeeZero)

	removed := r.Sweep(ctx)
	assert.Equal(t, 1, removed)
	assert.True(t, r.IsValid("fresh", fresh.SessionID))

	stats := r.Stats()
	require.Len(t, stats.Sessions, 1)
	assert.Equal(t, "fresh", stats.Sessions[0].UserID)
}

func TestStatsInactiveSeconds(t *testing.T) {
	ctx := context.Background()
	r, now := newTestRegistry(10 * time.Minute)

	r.Register(ctx, "ana", types.UserTypeBeeZero)
	*now = now.Add(90 * time.Second)

	stats := r.Stats()
	require.Len(t, stats.Sessions, 1)
	assert.Equal(t, int64(90), stats.Sessions[0].InactiveSeconds)
}
