package auth

import (
	"net/http"
	"slices"

	"codeberg.org/clickquest/server/clickquest/identity"
	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	internalauth "codeberg.org/clickquest/server/internal/auth"
	"codeberg.org/clickquest/server/internal/errors"
	"codeberg.org/clickquest/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// SignupHandler godoc
// @Summary Register a new account
// @Description Create a password account and email a verification code. No session is issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/signup [post]
func SignupHandler(identitySvc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := identitySvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondIdentityError(c, err)
			return
		}

		c.JSON(http.StatusCreated, SignupResponse{
			Message: "User created successfully",
			User:    user,
		})
	}
}

// VerifyEmailHandler godoc
// @Summary Verify email address
// @Description Consume the emailed verification code and activate the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyEmailRequest true "Verification payload"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/verify-email [post]
func VerifyEmailHandler(identitySvc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyEmailRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if _, err := identitySvc.VerifyEmail(c.Request.Context(), req.VerificationToken); err != nil {
			respondIdentityError(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "Email verified successfully"})
	}
}

// LoginHandler godoc
// @Summary Password login
// @Description Authenticate a verified account and set the session cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(identitySvc IdentityService, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		_, pair, err := identitySvc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondIdentityError(c, err)
			return
		}

		setAuthCookies(c, opts, pair)
		c.JSON(http.StatusOK, MessageResponse{Message: "Login successful"})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Revoke the refresh token if present and clear both cookies
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler(sessionSvc SessionService, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// logout must succeed even with no active session
		if refreshToken, err := c.Cookie(internalauth.RefreshTokenCookie); err == nil && refreshToken != "" {
			if err := sessionSvc.RevokeSession(c.Request.Context(), refreshToken); err != nil {
				errors.InternalError(c, "failed to revoke session", err)
				return
			}
		}

		clearAuthCookies(c, opts)
		c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
	}
}

// ForgotPasswordHandler godoc
// @Summary Request password reset
// @Description Store a reset token and email a reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/forgot-password [post]
func ForgotPasswordHandler(identitySvc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if err := identitySvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
			respondIdentityError(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "Password reset email sent successfully"})
	}
}

// ResetPasswordHandler godoc
// @Summary Reset password
// @Description Consume a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset payload"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/reset-password [post]
func ResetPasswordHandler(identitySvc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if err := identitySvc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
			respondIdentityError(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successful"})
	}
}

// CheckAuthHandler godoc
// @Summary Check authentication
// @Description Return the authenticated user's summary
// @Tags auth
// @Produce json
// @Success 200 {object} CheckAuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/check-auth [get]
// @Security BearerAuth
func CheckAuthHandler(userReader UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := internalauth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := userReader.FindByID(c.Request.Context(), userID)
		if err != nil {
			// a valid token for a deleted account is an auth failure,
			// a storage failure is not
			if errors.Is(err, users.ErrUserNotFound) {
				errors.Unauthorized(c, "")
				return
			}

			errors.InternalError(c, "failed to load user", err)
			return
		}

		c.JSON(http.StatusOK, CheckAuthResponse{
			Success: true,
			Message: "Authenticated",
			User: UserSummary{
				Name:       user.Name,
				Email:      user.Email,
				IsVerified: user.IsVerified,
			},
		})
	}
}

// RefreshTokenHandler godoc
// @Summary Rotate the session
// @Description Exchange the refresh cookie for a new access/refresh pair
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/auth/refresh-token [post]
func RefreshTokenHandler(sessionSvc SessionService, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		oldToken, err := c.Cookie(internalauth.RefreshTokenCookie)
		if err != nil || oldToken == "" {
			errors.Unauthorized(c, "")
			return
		}

		pair, err := sessionSvc.RefreshSession(c.Request.Context(), oldToken)
		if err != nil {
			switch {
			case errors.Is(err, sessions.ErrMissingToken):
				errors.Unauthorized(c, "")
			case errors.Is(err, sessions.ErrTokenExpired):
				errors.Forbidden(c, "refresh token expired")
			case errors.Is(err, sessions.ErrTokenRevoked):
				errors.Forbidden(c, "")
			default:
				errors.InternalError(c, "failed to refresh session", err)
			}
			return
		}

		setAuthCookies(c, opts, pair)
		c.JSON(http.StatusOK, MessageResponse{Message: "Tokens refreshed successfully"})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with the specified provider
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description Complete the OAuth flow, set session cookies and redirect to the frontend
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google)
// @Success 302 {string} string "Redirect to frontend"
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(
	identitySvc IdentityService,
	sessionSvc SessionService,
	opts CookieOptions,
	frontendURL string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		// the browser is mid-redirect: every failure goes back to the
		// frontend root instead of a JSON body
		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			logger.ErrorErr(err, "oauth authentication failed", "provider", provider)
			c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/")
			return
		}

		user, err := identitySvc.FindOrCreateOAuthUser(
			c.Request.Context(),
			gothUser.Name,
			gothUser.Email,
			gothUser.Provider,
			gothUser.UserID,
		)
		if err != nil {
			logger.ErrorErr(err, "failed to find or create oauth user", "provider", provider)
			c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/")
			return
		}

		pair, err := sessionSvc.IssueSession(c.Request.Context(), user)
		if err != nil {
			logger.ErrorErr(err, "failed to issue oauth session", "user_id", user.ID)
			c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/")
			return
		}

		setAuthCookies(c, opts, pair)
		c.Redirect(http.StatusTemporaryRedirect, frontendURL+"/dashboard")
	}
}

// translates identity service failures into HTTP responses
func respondIdentityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrValidation):
		errors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, identity.ErrDuplicateAccount):
		errors.BadRequest(c, "user already exists", nil)
	case errors.Is(err, identity.ErrNotFound):
		errors.BadRequest(c, "user does not exist", nil)
	case errors.Is(err, identity.ErrInvalidCredentials):
		errors.BadRequest(c, "invalid email or password", nil)
	case errors.Is(err, identity.ErrInvalidOrExpiredToken):
		errors.BadRequest(c, "invalid or expired token", nil)
	case errors.Is(err, identity.ErrUnverifiedAccount):
		errors.Forbidden(c, "email not verified! please check your inbox")
	default:
		errors.InternalError(c, "an error occurred", err)
	}
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google"}
	return slices.Contains(validProviders, provider)
}
