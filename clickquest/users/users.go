package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// postgres unique_violation
const uniqueViolationCode = "23505"

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// inserts a password-based account in pending-verification state
func (r *Repository) Create(
	ctx context.Context,
	name, email, passwordHash, verificationToken string,
	verificationExpiresAt time.Time,
) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		queryCreate,
		name,
		email,
		passwordHash,
		verificationToken,
		verificationExpiresAt,
	)

	user, err := scanUser(row)
	if err != nil {
		// unique constraint backstop for concurrent signups with the same email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateEmail
		}

		return nil, err
	}

	return user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

// finds a user by email, case-insensitive
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByEmail, email))
}

// finds a user with a pending email verification token
func (r *Repository) FindByVerificationToken(ctx context.Context, token string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByVerificationToken, token))
}

// marks the user verified and clears both verification fields
func (r *Repository) MarkVerified(ctx context.Context, userID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryMarkVerified, userID))
}

// stores a pending password reset token with its expiry
func (r *Repository) SetResetToken(
	ctx context.Context,
	userID, token string,
	expiresAt time.Time,
) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, querySetResetToken, token, expiresAt, userID))
}

// finds a user with a pending password reset token
func (r *Repository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByResetToken, token))
}

// replaces the password hash and clears both reset fields in one statement
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryUpdatePassword, passwordHash, userID))
}

// finds a user by OAuth identity
func (r *Repository) FindByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByProvider, provider, providerID))
}

// attaches an OAuth identity to an existing account and forces verification
func (r *Repository) LinkProvider(
	ctx context.Context,
	userID, provider, providerID string,
) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryLinkProvider, provider, providerID, userID))
}

// inserts a verified, passwordless account from an OAuth profile
func (r *Repository) CreateOAuth(
	ctx context.Context,
	name, email, provider, providerID string,
) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryCreateOAuth, name, email, provider, providerID))
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&user.ProviderID,
		&user.IsVerified,
		&user.VerificationToken,
		&user.VerificationTokenExpiresAt,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}
