package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/crypto"
	"codeberg.org/clickquest/server/internal/logger"
)

const (
	minPasswordLength = 6

	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

// creates a new identity lifecycle service
func NewService(store UserStore, mailer Mailer, issuer SessionIssuer, frontendURL string) *Service {
	return &Service{
		store:       store,
		mailer:      mailer,
		sessions:    issuer,
		frontendURL: frontendURL,
	}
}

// creates a pending-verification account and emails the verification code.
// No session tokens are issued here; registration and authentication are
// separate steps.
func (s *Service) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("checking for existing user: %w", err)
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generating verification code: %w", err)
	}

	user, err := s.store.Create(ctx, name, email, passwordHash, code, time.Now().Add(verificationTokenTTL))
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, ErrDuplicateAccount
		}

		return nil, fmt.Errorf("inserting user: %w", err)
	}

	// the account is committed; a failed email must not fail the signup
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
		logger.ErrorErr(err, "failed to send verification email", "user_id", user.ID)
	}

	return user, nil
}

// consumes a verification code and transitions the account to verified
func (s *Service) VerifyEmail(ctx context.Context, token string) (*users.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrValidation)
	}

	user, err := s.store.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}

		return nil, fmt.Errorf("looking up verification token: %w", err)
	}

	if user.VerificationTokenExpiresAt == nil || time.Now().After(*user.VerificationTokenExpiresAt) {
		return nil, ErrInvalidOrExpiredToken
	}

	verified, err := s.store.MarkVerified(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("marking user verified: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(ctx, verified.Email, verified.Name); err != nil {
		logger.ErrorErr(err, "failed to send welcome email", "user_id", verified.ID)
	}

	return verified, nil
}

// authenticates a verified account and delegates token minting to the
// session manager. Login is unconditionally blocked before verification.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, *sessions.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, nil, ErrNotFound
		}

		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	if user.PasswordHash == nil || !crypto.CheckPassword(password, *user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, nil, ErrUnverifiedAccount
	}

	pair, err := s.sessions.IssueSession(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("issuing session: %w", err)
	}

	return user, pair, nil
}

// stores a reset token on the account and emails the reset link.
// Note: the distinct not-found failure leaks account existence; kept to
// match the original behavior (see DESIGN.md).
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("looking up user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	updated, err := s.store.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL))
	if err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	if err := s.mailer.SendPasswordResetEmail(ctx, updated.Email, resetURL, updated.Name); err != nil {
		logger.ErrorErr(err, "failed to send password reset email", "user_id", updated.ID)
	}

	return nil
}

// consumes a reset token and replaces the password. The token grants
// exactly one password change; it is cleared atomically with the update.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrValidation)
	}

	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	user, err := s.store.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return ErrInvalidOrExpiredToken
		}

		return fmt.Errorf("looking up reset token: %w", err)
	}

	if user.ResetPasswordExpiresAt == nil || time.Now().After(*user.ResetPasswordExpiresAt) {
		return ErrInvalidOrExpiredToken
	}

	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters long", ErrValidation, minPasswordLength)
	}

	passwordHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing new password: %w", err)
	}

	if _, err := s.store.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}

// three-way upsert keyed by provider identity first, then email.
// Email identity takes precedence over provider identity so the same
// person never ends up with duplicate accounts across login methods.
func (s *Service) FindOrCreateOAuthUser(
	ctx context.Context,
	name, email, provider, providerID string,
) (*users.User, error) {
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: missing email or name in profile", ErrValidation)
	}

	user, err := s.store.FindByProvider(ctx, provider, providerID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("looking up provider identity: %w", err)
	}

	// the email may belong to a password account; link instead of duplicating.
	// OAuth proves email ownership, so linking also verifies the account.
	existing, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		linked, err := s.store.LinkProvider(ctx, existing.ID, provider, providerID)
		if err != nil {
			return nil, fmt.Errorf("linking provider to existing account: %w", err)
		}

		return linked, nil
	}

	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	created, err := s.store.CreateOAuth(ctx, name, email, provider, providerID)
	if err != nil {
		return nil, fmt.Errorf("creating oauth user: %w", err)
	}

	return created, nil
}
