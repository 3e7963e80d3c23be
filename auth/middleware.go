package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func tokenFromRequest(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ctx.GetHeader("token")
}

// RequireAuth validates the request token and stores the claims under
// "validuser" for downstream handlers.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized"})
			return
		}

		claims, err := ValidateToken(token, secret)
		if err != nil || claims.IsExpired() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "session expired"})
			return
		}

		ctx.Set("validuser", claims)
		ctx.Next()
	}
}

// RequireAdmin is RequireAuth plus an admin role check.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized"})
			return
		}

		claims, err := ValidateToken(token, secret)
		if err != nil || claims.IsExpired() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "session expired"})
			return
		}

		if !claims.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "you are not authorized"})
			return
		}

		ctx.Set("validuser", claims)
		ctx.Next()
	}
}
