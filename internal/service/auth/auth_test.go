package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type stubCreds struct {
	creds []models.Credential
	err   error
}

func (s stubCreds) Load(context.Context) ([]models.Credential, error) {
	return s.creds, s.err
}

type stubRegistry struct {
	registered []string
	closed     []string
}

func (r *stubRegistry) Register(_ context.Context, userID string, userType types.UserType) *models.Session {
	r.registered = append(r.registered, userID)
	return &models.Session{
		SessionID: "session-" + userID,
		UserID:    userID,
		UserType:  userType,
		CreatedAt: time.Now(),
	}
}

func (r *stubRegistry) Close(userID string) bool {
	r.closed = append(r.closed, userID)
	return true
}

func newService(creds ...models.Credential) (*AuthService, *stubRegistry) {
	reg := &stubRegistry{}
	return NewAuthService(stubCreds{creds: creds}, reg, logger.NewDiscard()), reg
}

func TestLoginEcodelivery(t *testing.T) {
	s, reg := newService(models.Credential{Biker: "Ana Gomez", User: "ana", Password: "secret"})

	user, sessionID, err := s.Login(context.Background(), " ana ", " secret ")
	require.NoError(t, err)

	assert.Equal(t, "ana@ecodelivery.com", user.Email)
	assert.Equal(t, "Ana Gomez", user.Name)
	assert.Equal(t, "Ana Gomez", user.DriverName)
	assert.Equal(t, types.UserTypeEcodelivery, user.UserType)
	assert.Equal(t, "session-ana", sessionID)
	assert.Equal(t, []string{"ana"}, reg.registered)
}

func TestLoginDemoDrivers(t *testing.T) {
	s, _ := newService()

	user, sessionID, err := s.Login(context.Background(), "Patricia", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "patricia@beezero.com", user.Email)
	assert.Equal(t, types.UserTypeBeeZero, user.UserType)
	assert.NotEmpty(t, sessionID)

	user, _, err = s.Login(context.Background(), "bee", "x")
	require.NoError(t, err)
	assert.Equal(t, "Driver BeeZero", user.Name)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	s, _ := newService(models.Credential{Biker: "Ana", User: "ana", Password: "secret"})

	_, _, err := s.Login(context.Background(), "ana", "wrong")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, _, err = s.Login(context.Background(), "nobody", "x")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	s, reg := newService()
	s.Logout(context.Background(), "ana")
	assert.Equal(t, []string{"ana"}, reg.closed)
}

func TestCognitoLogin(t *testing.T) {
	s, reg := newService()

	sessionID, err := s.CognitoLogin(context.Background(), "maria", "operador")
	require.NoError(t, err)
	assert.Equal(t, "session-maria", sessionID)
	assert.Equal(t, []string{"maria"}, reg.registered)

	// unknown type falls back to ecodelivery
	_, err = s.CognitoLogin(context.Background(), "pedro", "admin")
	require.NoError(t, err)
}
