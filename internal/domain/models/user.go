package models

import "github.com/beetracked/fleet-ops/internal/domain/types"

// User is the authenticated identity attached to a request. For demo logins
// it comes from the credentials file, for Cognito logins from the ID token.
type User struct {
	Sub      string         `json:"sub,omitempty"`
	Username string         `json:"username"`
	Email    string         `json:"email,omitempty"`
	Name     string         `json:"name"`
	UserType types.UserType `json:"userType,omitempty"`
	Demo     bool           `json:"-"`
}

// AuthUser is the identity returned by a successful login.
type AuthUser struct {
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	DriverName string         `json:"driverName"`
	UserType   types.UserType `json:"userType"`
}

// Credential is one line of the biker credentials file.
type Credential struct {
	Biker    string
	User     string
	Password string
}
