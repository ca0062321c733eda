package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// creates a token manager with the given secrets and lifetimes
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token secrets must not be empty")
	}

	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// returns the configured access token lifetime
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// returns the configured refresh token lifetime
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// creates a signed access token for the user
func (m *TokenManager) GenerateAccessToken(userID, email string) (string, error) {
	return sign(userID, email, m.accessSecret, m.accessTTL)
}

// creates a signed refresh token for the user
func (m *TokenManager) GenerateRefreshToken(userID, email string) (string, error) {
	return sign(userID, email, m.refreshSecret, m.refreshTTL)
}

// validates an access token and returns its claims
func (m *TokenManager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, m.accessSecret)
}

// validates a refresh token and returns its claims
func (m *TokenManager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, m.refreshSecret)
}

func sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	// iat/exp only have second granularity, so without a unique jti two
	// tokens minted in the same second would be byte-identical. Refresh
	// tokens double as one-time-use database keys and must never repeat.
	jti, err := tokenID()
	if err != nil {
		return "", fmt.Errorf("generating token id: %w", err)
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// returns a 16-byte cryptographically random token id, hex-encoded
func tokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}

// malformed, tampered and expired tokens all fail here; callers only
// see a single invalid-token error
func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
