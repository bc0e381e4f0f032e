package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type stubAuth struct {
	loggedOut []string
}

func (s *stubAuth) Login(ctx context.Context, user, password string) (models.AuthUser, string, error) {
	if user == "ana" && password == "secret" {
		return models.AuthUser{
			Email:      "ana@ecodelivery.com",
			Name:       "Ana",
			DriverName: "Ana",
			UserType:   types.UserTypeEcodelivery,
		}, "sess-1", nil
	}
	return models.AuthUser{}, "", types.ErrInvalidCredentials
}

func (s *stubAuth) Logout(ctx context.Context, userID string) {
	s.loggedOut = append(s.loggedOut, userID)
}

func (s *stubAuth) CognitoLogin(ctx context.Context, username, userType string) (string, error) {
	return "sess-2", nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	h := NewAuth(&stubAuth{}, logger.NewDiscard())

	rr := postJSON(t, h.Login, "/api/auth/login", `{"user":"ana","password":"secret"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sess-1", body["sessionId"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@ecodelivery.com", user["email"])
	assert.Equal(t, "Ana", user["driverName"])
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuth(&stubAuth{}, logger.NewDiscard())

	rr := postJSON(t, h.Login, "/api/auth/login", `{"user":"ana"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, dto.MsgLoginMissing, body["error"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := NewAuth(&stubAuth{}, logger.NewDiscard())

	rr := postJSON(t, h.Login, "/api/auth/login", `{"user":"ana","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, types.ErrInvalidCredentials.Error(), body["error"])
}

func TestLogout(t *testing.T) {
	svc := &stubAuth{}
	h := NewAuth(svc, logger.NewDiscard())

	rr := postJSON(t, h.Logout, "/api/auth/logout", `{"userId":"ana"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "Sesión cerrada exitosamente", body["message"])
	assert.Equal(t, []string{"ana"}, svc.loggedOut)

	rr = postJSON(t, h.Logout, "/api/auth/logout", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.MsgLogoutMissing, decodeBody(t, rr)["error"])
}

func TestCognitoLogin(t *testing.T) {
	h := NewAuth(&stubAuth{}, logger.NewDiscard())

	rr := postJSON(t, h.CognitoLogin, "/api/auth/cognito-login", `{"idToken":"tok","username":"ana"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "sess-2", body["sessionId"])
	assert.Equal(t, "Sesión registrada exitosamente", body["message"])

	rr = postJSON(t, h.CognitoLogin, "/api/auth/cognito-login", `{"username":"ana"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.MsgCognitoMissing, decodeBody(t, rr)["error"])
}
