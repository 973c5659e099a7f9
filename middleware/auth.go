package middleware

import (
	"net/http"
	"strings"

	"joeyjob/utils"

	"github.com/gin-gonic/gin"
)

// OrgAuthMiddleware validates the bearer token and binds the request to the
// organization it was issued for. Handlers read "orgID" from the context and
// must never trust an organization id from the request body for protected
// operations.
func OrgAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		subject, orgID, err := utils.ExtractOrgFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", subject)
		c.Set("orgID", orgID)
		c.Next()
	}
}
