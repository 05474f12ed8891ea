package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles carried in session tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims represents the JWT payload of a session token.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	jwt.RegisteredClaims
}

// SessionUser is the public view of the authenticated user.
type SessionUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username,omitempty"`
	Role     UserRole `json:"role,omitempty"`
}

// SessionStatus describes whether the caller holds a valid session.
type SessionStatus struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *SessionUser `json:"user,omitempty"`
}

// SessionResponse wraps SessionStatus the way the session endpoint answers.
type SessionResponse struct {
	Message SessionStatus `json:"message"`
}
