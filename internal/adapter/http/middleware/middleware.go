package middleware

import (
	"context"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type (
	// SessionRegistry checks and refreshes active sessions.
	SessionRegistry interface {
		IsValid(userID, sessionID string) bool
		Touch(userID string)
	}

	// TokenVerifier validates Cognito ID tokens.
	TokenVerifier interface {
		Configured() bool
		Verify(ctx context.Context, idToken string) (*models.User, error)
	}

	Middleware struct {
		sessions SessionRegistry
		tokens   TokenVerifier
		log      logger.Logger
	}
)

func NewMiddleware(sessions SessionRegistry, tokens TokenVerifier, log logger.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		tokens:   tokens,
		log:      log,
	}
}
