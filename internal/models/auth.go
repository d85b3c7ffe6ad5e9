package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the subset of an access token payload used for routing.
// The signature is never checked; the backend stays the authority.
type SessionClaims struct {
	Role     string `json:"role"`
	UserRole string `json:"user_role"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RoleClaim returns role, falling back to user_role.
func (c *SessionClaims) RoleClaim() string {
	if c == nil {
		return ""
	}
	if c.Role != "" {
		return c.Role
	}
	return c.UserRole
}
