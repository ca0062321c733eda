package sessions

import (
	"context"
	"time"

	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/auth"
	"github.com/jackc/pgx/v5/pgxpool"
)

// one issued, revocable refresh credential
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// an access/refresh pair handed to the transport layer
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// persistence for refresh token rows
type TokenStore interface {
	Insert(ctx context.Context, token, userID string, expiresAt time.Time) error
	Consume(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// read access to user rows for rebuilding claims on rotation
type UserSource interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// handles refresh token database operations
type Store struct {
	db *pgxpool.Pool
}

// owns refresh token issuance, rotation and revocation
type Manager struct {
	store  TokenStore
	users  UserSource
	tokens *auth.TokenManager
}
