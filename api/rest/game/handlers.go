package game

import (
	"net/http"

	internalauth "codeberg.org/clickquest/server/internal/auth"
	"codeberg.org/clickquest/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// how many rows the leaderboard returns
const leaderboardLimit = 10

// StatsHandler returns the authenticated user's click stats
// @Summary Get click stats
// @Description Returns the caller's click count, zeroed for users who never clicked
// @Tags game
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /game/me [get]
func StatsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := internalauth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "authentication required")
			return
		}

		stats, err := deps.Game.StatsFor(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "an error occurred", err)
			return
		}

		c.JSON(http.StatusOK, StatsResponse{GameData: stats})
	}
}

// IncrementHandler records one click for the authenticated user
// @Summary Record a click
// @Description Adds one click for the caller and returns the updated stats
// @Tags game
// @Produce json
// @Success 200 {object} game.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /game/increment [post]
func IncrementHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := internalauth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "authentication required")
			return
		}

		stats, err := deps.Game.Increment(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "an error occurred", err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// LeaderboardHandler returns the top clickers
// @Summary Get the leaderboard
// @Description Returns the highest click totals, ties broken by earliest click
// @Tags game
// @Produce json
// @Success 200 {object} LeaderboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /game/leaderboard [get]
func LeaderboardHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := deps.Game.Leaderboard(c.Request.Context(), leaderboardLimit)
		if err != nil {
			errors.InternalError(c, "an error occurred", err)
			return
		}

		c.JSON(http.StatusOK, LeaderboardResponse{Leaderboard: entries})
	}
}
