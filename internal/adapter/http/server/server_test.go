package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/config"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, user, password string) (models.AuthUser, string, error) {
	return models.AuthUser{}, "", nil
}
func (stubAuth) Logout(ctx context.Context, userID string) {}
func (stubAuth) CognitoLogin(ctx context.Context, username, userType string) (string, error) {
	return "", nil
}

type stubSessions struct{}

func (stubSessions) IsValid(userID, sessionID string) bool { return true }
func (stubSessions) Touch(userID string)                   {}

func TestNewServerTimeouts(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = "0"

	api, err := New(cfg, stubAuth{}, nil, nil, nil, nil, stubSessions{}, nil, nil, logger.NewDiscard())
	require.NoError(t, err)

	// A hung client or upstream must not hold the connection open forever.
	assert.Equal(t, readHeaderTimeout, api.server.ReadHeaderTimeout)
	assert.Equal(t, readTimeout, api.server.ReadTimeout)
	assert.Equal(t, writeTimeout, api.server.WriteTimeout)
	assert.Equal(t, idleTimeout, api.server.IdleTimeout)
}

func TestNewServerRequiresDependencies(t *testing.T) {
	cfg := config.Config{}

	_, err := New(cfg, nil, nil, nil, nil, nil, stubSessions{}, nil, nil, logger.NewDiscard())
	assert.Error(t, err)

	_, err = New(cfg, stubAuth{}, nil, nil, nil, nil, nil, nil, nil, logger.NewDiscard())
	assert.Error(t, err)
}
