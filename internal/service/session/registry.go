package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
)

const serviceName = "fleet-ops"

const (
	DefaultInactivityTimeout = 10 * time.Minute
	DefaultSweepInterval     = 5 * time.Minute
)

// Registry tracks the single active session each user is allowed.
// Registering a new session closes the previous one, so a login on a
// second device kicks the first.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*models.Session

	timeout    time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	log logger.Logger
}

func NewRegistry(timeout, sweepEvery time.Duration, log logger.Logger) *Registry {
	if timeout <= 0 {
		timeout = DefaultInactivityTimeout
	}
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepInterval
	}
	return &Registry{
		sessions:   make(map[string]*models.Session),
		timeout:    timeout,
		sweepEvery: sweepEvery,
		now:        time.Now,
		log:        log,
	}
}

// Register creates a session for the user, replacing any existing one.
func (r *Registry) Register(ctx context.Context, userID string, userType types.UserType) *models.Session {
	ctx = wrap.WithAction(ctx, "session_register")

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; ok {
		r.log.Info(ctx, "closing previous session", "user_id", userID)
	}

	now := r.now()
	s := &models.Session{
		SessionID:    newSessionID(now),
		UserID:       userID,
		UserType:     userType,
		CreatedAt:    now,
		LastActivity: now,
	}
	r.sessions[userID] = s
	metrics.ActiveSessionsGauge.WithLabelValues(serviceName).Set(float64(len(r.sessions)))

	r.log.Info(ctx, "session registered", "user_id", userID, "session_id", s.SessionID)
	return s
}

// IsValid reports whether sessionID is the user's current live session.
// An expired session is removed on the spot.
func (r *Registry) IsValid(userID, sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok || s.SessionID != sessionID {
		return false
	}
	if r.now().Sub(s.LastActivity) > r.timeout {
		delete(r.sessions, userID)
		metrics.ActiveSessionsGauge.WithLabelValues(serviceName).Set(float64(len(r.sessions)))
		return false
	}
	return true
}

// Touch refreshes the user's activity timestamp, if a session exists.
func (r *Registry) Touch(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		s.LastActivity = r.now()
	}
}

// Close removes the user's session. Reports whether one existed.
func (r *Registry) Close(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return false
	}
	delete(r.sessions, userID)
	metrics.ActiveSessionsGauge.WithLabelValues(serviceName).Set(float64(len(r.sessions)))
	return true
}

// Get returns a copy of the user's session.
func (r *Registry) Get(userID string) (models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		return models.Session{}, false
	}
	return *s, true
}

// Sweep removes every session past the inactivity timeout and returns
// how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	ctx = wrap.WithAction(ctx, types.ActionSessionSweep)

	r.mu.Lock()
	now := r.now()
	removed := 0
	for userID, s := range r.sessions {
		if now.Sub(s.LastActivity) > r.timeout {
			delete(r.sessions, userID)
			removed++
		}
	}
	metrics.ActiveSessionsGauge.WithLabelValues(serviceName).Set(float64(len(r.sessions)))
	r.mu.Unlock()

	if removed > 0 {
		metrics.SessionsExpiredTotal.WithLabelValues(serviceName).Add(float64(removed))
		r.log.Info(ctx, "expired sessions removed", "count", removed)
	}
	return removed
}

// Stats returns a snapshot of every active session.
func (r *Registry) Stats() models.SessionStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stats := models.SessionStats{
		ActiveSessions: len(r.sessions),
		Sessions:       make([]models.SessionInfo, 0, len(r.sessions)),
	}
	for _, s := range r.sessions {
		stats.Sessions = append(stats.Sessions, models.SessionInfo{
			UserID:          s.UserID,
			SessionID:       s.SessionID,
			CreatedAt:       s.CreatedAt,
			LastActivity:    s.LastActivity,
			InactiveSeconds: int64(now.Sub(s.LastActivity).Seconds()),
		})
	}
	return stats
}

// Run sweeps expired sessions on an interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func newSessionID(now time.Time) string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return fmt.Sprintf("%d-%s", now.UnixMilli(), hex.EncodeToString(buf))
}
