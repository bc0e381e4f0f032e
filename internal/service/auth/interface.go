package auth

import (
	"context"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
)

// CredentialSource provides the Ecodelivery biker credentials.
type CredentialSource interface {
	Load(ctx context.Context) ([]models.Credential, error)
}

// SessionRegistry is the slice of the session registry the auth flow
// needs.
type SessionRegistry interface {
	Register(ctx context.Context, userID string, userType types.UserType) *models.Session
	Close(userID string) bool
}
