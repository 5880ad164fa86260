package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextUserIDKey = "auth.userID"
	contextEmailKey  = "auth.email"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity on the gin context.
func RequireAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		identity, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHENTICATED", "message": "missing or invalid token"},
			})
			return
		}
		c.Set(contextUserIDKey, identity.UserID)
		c.Set(contextEmailKey, identity.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

// Email returns the authenticated email stored by RequireAuth.
func Email(c *gin.Context) string {
	return c.GetString(contextEmailKey)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
