package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// cookie names used for session transport
const (
	AccessTokenCookie  = "token"
	RefreshTokenCookie = "refreshToken"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// signs and verifies access and refresh tokens.
// Access and refresh tokens use different secrets so a leaked
// refresh secret cannot mint access tokens and vice versa.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}
