package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminInfo describes the authenticated admin in responses. The client uses
// it to attribute subsequent writes.
type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse returns the opaque session marker plus admin identity.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
	Admin     AdminInfo `json:"admin"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session gate states. Any qualifying request returns a session to Active;
// idle sessions pass through Warning before expiring.
const (
	SessionActive  = "active"
	SessionWarning = "warning"
	SessionExpired = "expired"
)

// SessionState reports where a session sits in the inactivity state machine.
type SessionState struct {
	State            string `json:"state"`
	IdleSeconds      int    `json:"idle_seconds"`
	CountdownSeconds int    `json:"countdown_seconds"`
}
