package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/helioworks/artvault/internal/config"
	"github.com/helioworks/artvault/internal/modules/serializer"
)

// BearerAuth returns a middleware that authenticates requests against the
// configured API token. It also resolves the acting user from the X-Actor
// header so mutations carry attribution in history and audit rows.
func BearerAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(raw), []byte(cfg.Root.ApiBearerToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		actor := strings.TrimSpace(c.GetHeader("X-Actor"))
		if actor == "" {
			actor = cfg.Root.DefaultActor
		}
		c.Set("actor", actor)
		c.Next()
	}
}
