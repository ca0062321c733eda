package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/clickquest/server/clickquest/game"
	"codeberg.org/clickquest/server/clickquest/identity"
	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/auth"
	"codeberg.org/clickquest/server/internal/config"
	"codeberg.org/clickquest/server/internal/mail"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small, managed postgres poolers cap connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for PgBouncer compatibility. transaction-mode
	// poolers don't support prepared statements, which causes connections
	// to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	gameRepo := game.NewRepository(db)
	sessionStore := sessions.NewStore(db)
	mailer := mail.New(cfg.SMTP)

	tokens, err := auth.NewTokenManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	sessionMgr := sessions.NewManager(sessionStore, userRepo, tokens)
	identitySvc := identity.NewService(userRepo, mailer, sessionMgr, cfg.FrontendURL)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:         db,
		config:     cfg,
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		tokens:     tokens,
		sessionMgr: sessionMgr,
		identity:   identitySvc,
		router:     router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
