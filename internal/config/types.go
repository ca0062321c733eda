package config

import "time"

type Config struct {
	DatabaseURL string
	Environment string

	AccessTokenSecret  string
	RefreshTokenSecret string
	SessionSecret      string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	BaseURL     string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string

	SMTP SMTPConfig
}

// settings for the outbound mail server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}
