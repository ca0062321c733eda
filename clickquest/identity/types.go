package identity

import (
	"context"
	"time"

	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
)

// persistence operations the lifecycle manager needs on user rows
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, verificationToken string, verificationExpiresAt time.Time) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*users.User, error)
	MarkVerified(ctx context.Context, userID string) (*users.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) (*users.User, error)
	FindByResetToken(ctx context.Context, token string) (*users.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) (*users.User, error)
	FindByProvider(ctx context.Context, provider, providerID string) (*users.User, error)
	LinkProvider(ctx context.Context, userID, provider, providerID string) (*users.User, error)
	CreateOAuth(ctx context.Context, name, email, provider, providerID string) (*users.User, error)
}

// outbound email contract; dispatch is best-effort
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, code string) error
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendPasswordResetEmail(ctx context.Context, email, resetURL, name string) error
}

// mints access/refresh pairs; implemented by the session manager
type SessionIssuer interface {
	IssueSession(ctx context.Context, user *users.User) (*sessions.TokenPair, error)
}

// owns the user record state machine: signup, email verification,
// password reset and OAuth link/create
type Service struct {
	store       UserStore
	mailer      Mailer
	sessions    SessionIssuer
	frontendURL string
}
