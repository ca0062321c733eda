package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents one account.
// Token fields are only populated while the matching flow is pending
// and are cleared when consumed. The password hash is nil for accounts
// created through OAuth.
type User struct {
	ID                         string     `json:"id"`
	Name                       string     `json:"name"`
	Email                      string     `json:"email"`
	PasswordHash               *string    `json:"-"`
	Provider                   *string    `json:"provider,omitempty"`
	ProviderID                 *string    `json:"-"`
	IsVerified                 bool       `json:"is_verified"`
	VerificationToken          *string    `json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
	ResetPasswordToken         *string    `json:"-"`
	ResetPasswordExpiresAt     *time.Time `json:"-"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}
