package middlewares

import (
	"net/http"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/assets_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware authenticates requests against the static token list in
// EXPORT_API_TOKENS (comma separated). With no tokens configured the API is
// open, which is the local development mode.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := tokenSet()
		if len(allowed) == 0 {
			c.Next()
			return
		}

		token := c.Request.Header.Get("token")
		if token == "" || !allowed[token] {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(utils.SetTokenInContext(c.Request.Context(), token))
		c.Next()
	}
}

func tokenSet() map[string]bool {
	raw := strings.TrimSpace(os.Getenv("EXPORT_API_TOKENS"))
	if raw == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = true
		}
	}
	return set
}
