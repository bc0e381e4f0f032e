package auth

import (
	"context"
	"strings"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

// AuthService validates logins against the Ecodelivery credentials file
// and the built-in BeeZero demo users, and manages the resulting
// sessions.
type AuthService struct {
	creds    CredentialSource
	registry SessionRegistry
	log      logger.Logger
}

func NewAuthService(creds CredentialSource, registry SessionRegistry, log logger.Logger) *AuthService {
	return &AuthService{
		creds:    creds,
		registry: registry,
		log:      log,
	}
}

// Login checks user/password and opens a session. Ecodelivery
// credentials are checked first, then the demo drivers.
func (s *AuthService) Login(ctx context.Context, user, password string) (models.AuthUser, string, error) {
	ctx = wrap.WithAction(ctx, "login")

	userTrim := strings.TrimSpace(user)
	passTrim := strings.TrimSpace(password)

	creds, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load credentials", err)
		return models.AuthUser{}, "", err
	}

	for _, c := range creds {
		if c.User == userTrim && c.Password == passTrim {
			session := s.registry.Register(ctx, c.User, types.UserTypeEcodelivery)
			return models.AuthUser{
				Email:      c.User + "@ecodelivery.com",
				Name:       c.Biker,
				DriverName: c.Biker,
				UserType:   types.UserTypeEcodelivery,
			}, session.SessionID, nil
		}
	}

	// BeeZero demo drivers, password not checked
	switch strings.ToLower(userTrim) {
	case "patricia":
		session := s.registry.Register(ctx, "patricia", types.UserTypeBeeZero)
		return models.AuthUser{
			Email:      "patricia@beezero.com",
			Name:       "Patricia",
			DriverName: "Patricia",
			UserType:   types.UserTypeBeeZero,
		}, session.SessionID, nil
	case "beezero", "bee":
		session := s.registry.Register(ctx, strings.ToLower(userTrim), types.UserTypeBeeZero)
		return models.AuthUser{
			Email:      "driver@beezero.com",
			Name:       "Driver BeeZero",
			DriverName: "Driver BeeZero",
			UserType:   types.UserTypeBeeZero,
		}, session.SessionID, nil
	}

	return models.AuthUser{}, "", types.ErrInvalidCredentials
}

// Logout closes the user's session. Closing a session that does not
// exist is not an error.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	ctx = wrap.WithAction(ctx, "logout")
	if s.registry.Close(userID) {
		s.log.Info(ctx, "session closed", "user_id", userID)
	}
}

// CognitoLogin opens a session for a user already authenticated against
// Cognito on the frontend. The asserted user type is checked against
// the allow-list, anything else falls back to ecodelivery.
func (s *AuthService) CognitoLogin(ctx context.Context, username, userType string) (string, error) {
	ctx = wrap.WithAction(ctx, "cognito_login")

	sessionType := types.UserTypeEcodelivery
	if types.ValidUserType(userType) {
		sessionType = types.UserType(userType)
	}

	session := s.registry.Register(ctx, username, sessionType)
	return session.SessionID, nil
}
