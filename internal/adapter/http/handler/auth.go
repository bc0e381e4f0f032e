package handler

import (
	"context"
	"net/http"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

type AuthService interface {
	Login(ctx context.Context, user, password string) (models.AuthUser, string, error)
	Logout(ctx context.Context, userID string)
	CognitoLogin(ctx context.Context, username, userType string) (string, error)
}

type Auth struct {
	auth AuthService
	l    logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		auth: service,
		l:    l,
	}
}

// Login godoc
// @Summary      Login
// @Description  Validates credentials and opens a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LoginRequest  true  "credentials"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login_user")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgLoginMissing)
		return
	}

	user, sessionID, err := h.auth.Login(ctx, req.User, req.Password)
	if err != nil {
		h.l.Warn(wrap.WithUserID(ctx, req.User), "failed login attempt")
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":   true,
		"user":      user,
		"sessionId": sessionID,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout godoc
// @Summary      Logout
// @Description  Closes the user's session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LogoutRequest  true  "user id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/auth/logout [post]
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "logout_user")

	req := &dto.LogoutRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogout(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgLogoutMissing)
		return
	}

	h.auth.Logout(ctx, req.UserID)

	response := envelope{
		"success": true,
		"message": "Sesión cerrada exitosamente",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// CognitoLogin godoc
// @Summary      Register a Cognito session
// @Description  Opens a session for a user already authenticated against Cognito
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CognitoLoginRequest  true  "token and username"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/auth/cognito-login [post]
func (h *Auth) CognitoLogin(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "cognito_login")

	req := &dto.CognitoLoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateCognitoLogin(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgCognitoMissing)
		return
	}

	sessionID, err := h.auth.CognitoLogin(ctx, req.Username, req.UserType)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register cognito session", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":   true,
		"sessionId": sessionID,
		"message":   "Sesión registrada exitosamente",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
