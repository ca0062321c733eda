package game

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles click stats database operations
type Repository struct {
	db *pgxpool.Pool
}

// one user's click counter
type Stats struct {
	UserID      string     `json:"user_id"`
	Clicks      int64      `json:"clicks"`
	LastClickAt *time.Time `json:"last_click_at,omitempty"`
}

// one row of the leaderboard
type LeaderboardEntry struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Clicks   int64  `json:"clicks"`
}
