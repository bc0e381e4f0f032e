package models

import (
	"time"

	"github.com/beetracked/fleet-ops/internal/domain/types"
)

// Session is a single active session for a user. A user holds at most one:
// registering a new session replaces the previous one.
type Session struct {
	SessionID    string         `json:"sessionId"`
	UserID       string         `json:"userId"`
	UserType     types.UserType `json:"userType,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastActivity time.Time      `json:"lastActivity"`
}

// SessionInfo is the per-session view exposed by the stats endpoint.
type SessionInfo struct {
	UserID          string    `json:"userId"`
	SessionID       string    `json:"sessionId"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActivity    time.Time `json:"lastActivity"`
	InactiveSeconds int64     `json:"inactiveSeconds"`
}

// SessionStats is a point-in-time snapshot of the registry.
type SessionStats struct {
	ActiveSessions int           `json:"activeSessions"`
	Sessions       []SessionInfo `json:"sessions"`
}
