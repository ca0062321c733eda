package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// default token lifetimes, overridable via environment
	defaultAccessTokenTTL  = 7 * 24 * time.Hour
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	frontendURL := os.Getenv("FRONTEND_URL")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if accessSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is required")
	}

	if refreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if frontendURL == "" {
		return nil, fmt.Errorf("FRONTEND_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	accessTTL, err := durationEnv("ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshTTL, err := durationEnv("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	smtp, err := loadSMTP()
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:        databaseURL,
		Environment:        environment,
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		SessionSecret:      sessionSecret,
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		BaseURL:            baseURL,
		FrontendURL:        frontendURL,
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		SMTP:               smtp,
	}, nil
}

// reads SMTP settings for the mailer
func loadSMTP() (SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")

	if host == "" {
		return SMTPConfig{}, fmt.Errorf("SMTP_HOST environment variable is required")
	}

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return SMTPConfig{}, fmt.Errorf("SMTP_PORT must be a number: %w", err)
		}
		port = parsed
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		return SMTPConfig{}, fmt.Errorf("SMTP_FROM environment variable is required")
	}

	return SMTPConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	}, nil
}

// parses a duration from the environment, falling back to a default
func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 168h: %w", name, err)
	}

	return d, nil
}
