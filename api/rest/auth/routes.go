package auth

import (
	internalauth "codeberg.org/clickquest/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, deps Deps) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", SignupHandler(deps.Identity))
		authGroup.POST("/verify-email", VerifyEmailHandler(deps.Identity))
		authGroup.POST("/login", LoginHandler(deps.Identity, deps.Cookies))
		authGroup.POST("/logout", LogoutHandler(deps.Sessions, deps.Cookies))
		authGroup.POST("/forgot-password", ForgotPasswordHandler(deps.Identity))
		authGroup.POST("/reset-password", ResetPasswordHandler(deps.Identity))
		authGroup.POST("/refresh-token", RefreshTokenHandler(deps.Sessions, deps.Cookies))
		authGroup.GET("/check-auth", internalauth.Middleware(deps.Tokens), CheckAuthHandler(deps.Users))
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(deps.Identity, deps.Sessions, deps.Cookies, deps.FrontendURL))
	}
}
