package auth

import (
	"net/http"
	"time"

	"codeberg.org/clickquest/server/clickquest/sessions"
	internalauth "codeberg.org/clickquest/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// cookie attributes derived from configuration
type CookieOptions struct {
	AccessMaxAge  int
	RefreshMaxAge int
	Secure        bool
}

// builds cookie options from the token lifetimes
func NewCookieOptions(accessTTL, refreshTTL time.Duration, secure bool) CookieOptions {
	return CookieOptions{
		AccessMaxAge:  int(accessTTL.Seconds()),
		RefreshMaxAge: int(refreshTTL.Seconds()),
		Secure:        secure,
	}
}

// writes the access and refresh tokens as HTTP-only cookies
func setAuthCookies(c *gin.Context, opts CookieOptions, pair *sessions.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(internalauth.AccessTokenCookie, pair.AccessToken, opts.AccessMaxAge, "/", "", opts.Secure, true)
	c.SetCookie(internalauth.RefreshTokenCookie, pair.RefreshToken, opts.RefreshMaxAge, "/", "", opts.Secure, true)
}

// expires both auth cookies
func clearAuthCookies(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(internalauth.AccessTokenCookie, "", -1, "/", "", opts.Secure, true)
	c.SetCookie(internalauth.RefreshTokenCookie, "", -1, "/", "", opts.Secure, true)
}
