package main

import (
	"codeberg.org/clickquest/server/clickquest/game"
	"codeberg.org/clickquest/server/clickquest/identity"
	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/auth"
	"codeberg.org/clickquest/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db         *pgxpool.Pool
	config     *config.Config
	userRepo   *users.Repository
	gameRepo   *game.Repository
	tokens     *auth.TokenManager
	sessionMgr *sessions.Manager
	identity   *identity.Service
	router     *gin.Engine
}
