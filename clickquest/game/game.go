package game

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new game repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// adds one click for the user, creating the row on first click.
// The upsert leans on the store's row guarantees, so concurrent clicks
// never lose an increment.
func (r *Repository) Increment(ctx context.Context, userID string) (*Stats, error) {
	var stats Stats

	err := r.db.QueryRow(ctx, queryIncrement, userID).Scan(
		&stats.UserID,
		&stats.Clicks,
		&stats.LastClickAt,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// returns the user's click stats; users who never clicked get zeros
func (r *Repository) StatsFor(ctx context.Context, userID string) (*Stats, error) {
	var stats Stats

	err := r.db.QueryRow(ctx, queryStatsFor, userID).Scan(
		&stats.UserID,
		&stats.Clicks,
		&stats.LastClickAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Stats{UserID: userID}, nil
		}

		return nil, err
	}

	return &stats, nil
}

// returns the top clickers, highest first
func (r *Repository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, queryLeaderboard, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	entries := []LeaderboardEntry{}

	for rows.Next() {
		var entry LeaderboardEntry

		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.Clicks); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
