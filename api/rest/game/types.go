package game

import (
	"context"

	clickgame "codeberg.org/clickquest/server/clickquest/game"
	internalauth "codeberg.org/clickquest/server/internal/auth"
)

// GameService provides click tracking and ranking.
type GameService interface {
	Increment(ctx context.Context, userID string) (*clickgame.Stats, error)
	StatsFor(ctx context.Context, userID string) (*clickgame.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]clickgame.LeaderboardEntry, error)
}

// Deps holds the dependencies for game handlers.
type Deps struct {
	Game   GameService
	Tokens *internalauth.TokenManager
}

// StatsResponse wraps a user's click stats.
type StatsResponse struct {
	GameData *clickgame.Stats `json:"gameData"`
}

// LeaderboardResponse wraps the ranked click totals.
type LeaderboardResponse struct {
	Leaderboard []clickgame.LeaderboardEntry `json:"leaderboard"`
}
