package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/auth"
)

// creates a new session manager
func NewManager(store TokenStore, userSource UserSource, tokens *auth.TokenManager) *Manager {
	return &Manager{
		store:  store,
		users:  userSource,
		tokens: tokens,
	}
}

// mints an access/refresh pair for the user and persists the refresh row
func (m *Manager) IssueSession(ctx context.Context, user *users.User) (*TokenPair, error) {
	accessToken, err := m.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err := m.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	expiresAt := time.Now().Add(m.tokens.RefreshTTL())

	if err := m.store.Insert(ctx, refreshToken, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// exchanges a refresh token for a brand-new pair. One-time-use rotation:
// the old token is invalidated by the consume even when the exchange
// succeeds, so a replayed token always fails.
func (m *Manager) RefreshSession(ctx context.Context, oldToken string) (*TokenPair, error) {
	if oldToken == "" {
		return nil, ErrMissingToken
	}

	// signature check before touching the store; forged or mangled
	// tokens never reach the database
	if _, err := m.tokens.VerifyRefreshToken(oldToken); err != nil {
		return nil, ErrTokenRevoked
	}

	consumed, err := m.store.Consume(ctx, oldToken)
	if err != nil {
		if errors.Is(err, errTokenNotFound) {
			return nil, ErrTokenRevoked
		}

		return nil, fmt.Errorf("consuming refresh token: %w", err)
	}

	// lazy expiry: the consume already removed the row
	if time.Now().After(consumed.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	user, err := m.users.FindByID(ctx, consumed.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading user for rotation: %w", err)
	}

	pair, err := m.IssueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// removes the refresh row if present. Idempotent: logout succeeds even
// with no active session.
func (m *Manager) RevokeSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting refresh token: %w", err)
	}

	return nil
}
