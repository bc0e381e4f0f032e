package dto

import "github.com/beetracked/fleet-ops/pkg/validator"

// Validation messages are part of the API contract.
const (
	MsgLoginMissing   = "Usuario y contraseña requeridos"
	MsgLogoutMissing  = "userId requerido"
	MsgCognitoMissing = "idToken y username requeridos"
)

type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	UserID string `json:"userId"`
}

type CognitoLoginRequest struct {
	IDToken  string `json:"idToken"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

func ValidateLogin(v *validator.Validator, req *LoginRequest) {
	v.Check(req.User != "", "user", "must be provided")
	v.Check(req.Password != "", "password", "must be provided")
}

func ValidateLogout(v *validator.Validator, req *LogoutRequest) {
	v.Check(req.UserID != "", "userId", "must be provided")
}

func ValidateCognitoLogin(v *validator.Validator, req *CognitoLoginRequest) {
	v.Check(req.IDToken != "", "idToken", "must be provided")
	v.Check(req.Username != "", "username", "must be provided")
}
