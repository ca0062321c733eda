package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unknown to storage; the manager translates this into a revoked failure
var errTokenNotFound = errors.New("refresh token not found")

// creates a new refresh token store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// persists a freshly issued refresh token row
func (s *Store) Insert(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := s.db.Exec(ctx, queryInsert, token, userID, expiresAt)
	return err
}

// atomically removes and returns the row for a token.
// Zero rows means the token was never issued or was already
// rotated/revoked; either way it must not be accepted.
func (s *Store) Consume(ctx context.Context, token string) (*RefreshToken, error) {
	var rt RefreshToken

	err := s.db.QueryRow(ctx, queryConsume, token).Scan(
		&rt.Token,
		&rt.UserID,
		&rt.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errTokenNotFound
		}

		return nil, err
	}

	return &rt, nil
}

// removes the row if present; deleting an absent token is not an error
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, queryDelete, token)
	return err
}
