package auth

import (
	"context"

	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	internalauth "codeberg.org/clickquest/server/internal/auth"
)

// identity lifecycle operations the handlers depend on
type IdentityService interface {
	Register(ctx context.Context, name, email, password string) (*users.User, error)
	VerifyEmail(ctx context.Context, token string) (*users.User, error)
	Login(ctx context.Context, email, password string) (*users.User, *sessions.TokenPair, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	FindOrCreateOAuthUser(ctx context.Context, name, email, provider, providerID string) (*users.User, error)
}

// session operations the handlers depend on
type SessionService interface {
	IssueSession(ctx context.Context, user *users.User) (*sessions.TokenPair, error)
	RefreshSession(ctx context.Context, oldToken string) (*sessions.TokenPair, error)
	RevokeSession(ctx context.Context, token string) error
}

// read access to user rows for check-auth
type UserReader interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// everything the auth routes need
type Deps struct {
	Identity    IdentityService
	Sessions    SessionService
	Users       UserReader
	Tokens      *internalauth.TokenManager
	Cookies     CookieOptions
	FrontendURL string
}

// SignupRequest for creating a password account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest carries the emailed verification code
type VerifyEmailRequest struct {
	VerificationToken string `json:"verificationToken"`
}

// LoginRequest for password authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the reset flow
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupResponse returns the created account, hash excluded via the model
type SignupResponse struct {
	Message string      `json:"message"`
	User    *users.User `json:"user"`
}

// UserSummary is the check-auth view of an account
type UserSummary struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// CheckAuthResponse confirms a live access token
type CheckAuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
