package main

import (
	"codeberg.org/clickquest/server/api/rest/auth"
	"codeberg.org/clickquest/server/api/rest/game"
	"codeberg.org/clickquest/server/api/rest/health"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config))
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, auth.Deps{
			Identity: server.identity,
			Sessions: server.sessionMgr,
			Users:    server.userRepo,
			Tokens:   server.tokens,
			Cookies: auth.NewCookieOptions(
				server.tokens.AccessTTL(),
				server.tokens.RefreshTTL(),
				server.config.Environment == "production",
			),
			FrontendURL: server.config.FrontendURL,
		})

		game.RegisterRoutes(v1, game.Deps{
			Game:   server.gameRepo,
			Tokens: server.tokens,
		})
	}
}
