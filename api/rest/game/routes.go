package game

import (
	internalauth "codeberg.org/clickquest/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the game endpoints, all behind authentication.
func RegisterRoutes(router *gin.RouterGroup, deps Deps) {
	game := router.Group("/game")
	game.Use(internalauth.Middleware(deps.Tokens))
	{
		game.GET("/me", StatsHandler(deps))
		game.POST("/increment", IncrementHandler(deps))
		game.GET("/leaderboard", LeaderboardHandler(deps))
	}
}
