package auth

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/clickquest/server/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// sets up the Google OAuth provider using goth
func InitializeProviders(cfg *config.Config) error {
	if cfg.SessionSecret == "" {
		return fmt.Errorf("session secret must be set")
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	isHTTPS := strings.HasPrefix(cfg.BaseURL, "https://")

	// configure cookie for OAuth redirects
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300, // 5 minutes, enough for OAuth flow
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return fmt.Errorf("google client id and secret must be set")
	}

	goth.UseProviders(google.New(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.BaseURL+"/api/v1/auth/google/callback",
		"email", "profile",
	))

	return nil
}
