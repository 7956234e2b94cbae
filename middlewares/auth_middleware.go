package middlewares

import (
	"net/http"
	"strings"

	"github.com/SierraFuelsDev/fuelwarden/services"
	"github.com/SierraFuelsDev/fuelwarden/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextAuth       = "auth"
	ContextSessionKey = "sessionKey"
	ContextUserID     = "userID"
)

// AuthMiddleware resolves the bearer token to a live AuthContext. Unknown
// session keys are resumed from the secret inside the token, so a process
// restart does not invalidate sessions.
func AuthMiddleware(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := utils.ParseSessionToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		auth, err := registry.Resume(c.Request.Context(), claims.SessionKey, claims.Secret)
		if err != nil || !auth.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(ContextAuth, auth)
		c.Set(ContextSessionKey, claims.SessionKey)
		c.Set(ContextUserID, auth.User().ID)
		c.Next()
	}
}

// AuthFromContext pulls the AuthContext the middleware stored.
func AuthFromContext(c *gin.Context) *services.AuthContext {
	v, _ := c.Get(ContextAuth)
	auth, _ := v.(*services.AuthContext)
	return auth
}
