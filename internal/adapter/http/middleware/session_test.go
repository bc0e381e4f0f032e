package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type stubRegistry struct {
	valid   bool
	touched []string
}

func (s *stubRegistry) IsValid(userID, sessionID string) bool { return s.valid }
func (s *stubRegistry) Touch(userID string)                   { s.touched = append(s.touched, userID) }

type stubVerifier struct {
	configured bool
	user       *models.User
	err        error
}

func (s *stubVerifier) Configured() bool { return s.configured }

func (s *stubVerifier) Verify(ctx context.Context, idToken string) (*models.User, error) {
	return s.user, s.err
}

func TestValidateSessionAnonymousPassesThrough(t *testing.T) {
	m := NewMiddleware(&stubRegistry{}, nil, logger.NewDiscard())

	called := false
	h := m.ValidateSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/turnos/iniciar",
		strings.NewReader(`{"abejita":"Maya"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.True(t, called)
}

func TestValidateSessionFromBody(t *testing.T) {
	reg := &stubRegistry{valid: true}
	m := NewMiddleware(reg, nil, logger.NewDiscard())

	// The handler must still see the full body after the middleware read it.
	var seen map[string]any
	h := m.ValidateSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &seen))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/turnos/iniciar",
		strings.NewReader(`{"userId":"ana","sessionId":"s1","abejita":"Maya"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"ana"}, reg.touched)
	assert.Equal(t, "Maya", seen["abejita"])
}

func TestValidateSessionUserWithoutSessionID(t *testing.T) {
	// Old clients send a userId but no session id at all. They pass
	// through and still get their activity refreshed.
	reg := &stubRegistry{valid: false}
	m := NewMiddleware(reg, nil, logger.NewDiscard())

	called := false
	h := m.ValidateSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/turnos/iniciar",
		strings.NewReader(`{"userId":"ana","abejita":"Maya"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
	assert.Equal(t, []string{"ana"}, reg.touched)
}

func TestValidateSessionExpired(t *testing.T) {
	m := NewMiddleware(&stubRegistry{valid: false}, nil, logger.NewDiscard())

	h := m.ValidateSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on an expired session")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/turnos/iniciar",
		strings.NewReader(`{"userId":"ana","sessionId":"stale"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, types.ErrSessionInvalid.Error(), body["error"])
	assert.Equal(t, types.SessionExpiredCode, body["code"])
}

func TestValidateSessionHeaderAndQuery(t *testing.T) {
	reg := &stubRegistry{valid: true}
	m := NewMiddleware(reg, nil, logger.NewDiscard())

	h := m.ValidateSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos?userId=ana", nil)
	req.Header.Set(sessionIDHeader, "s1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"ana"}, reg.touched)
}

func TestOptionalAuthNoToken(t *testing.T) {
	m := NewMiddleware(&stubRegistry{}, &stubVerifier{configured: true}, logger.NewDiscard())

	called := false
	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, models.UserFromContext(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.True(t, called)
}

func TestOptionalAuthDemoToken(t *testing.T) {
	m := NewMiddleware(&stubRegistry{}, &stubVerifier{configured: true, err: types.ErrInvalidToken}, logger.NewDiscard())

	called := false
	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	req.Header.Set("Authorization", "Bearer demo-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.True(t, called)
}

func TestOptionalAuthUnconfiguredAccepts(t *testing.T) {
	m := NewMiddleware(&stubRegistry{}, &stubVerifier{configured: false}, logger.NewDiscard())

	called := false
	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	req.Header.Set("Authorization", "Bearer some-cognito-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.True(t, called)
}

func TestOptionalAuthVerifies(t *testing.T) {
	verifier := &stubVerifier{
		configured: true,
		user:       &models.User{Sub: "sub-1", Username: "ana"},
	}
	m := NewMiddleware(&stubRegistry{}, verifier, logger.NewDiscard())

	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := models.UserFromContext(r.Context())
		require.NotNil(t, u)
		assert.Equal(t, "ana", u.Username)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	req.Header.Set("Authorization", "Bearer eyJ.token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestOptionalAuthRejectsInvalidToken(t *testing.T) {
	m := NewMiddleware(&stubRegistry{}, &stubVerifier{configured: true, err: types.ErrInvalidToken}, logger.NewDiscard())

	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, types.ErrInvalidToken.Error(), body["error"])
}
