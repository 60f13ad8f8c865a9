package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/helioworks/artvault/internal/modules/serializer"
)

// ActorKey is the gin context key carrying the acting user, set by middleware.
const ActorKey = "actor"

func actorOf(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "system"
}

func fail(c *gin.Context, err error) {
	res := serializer.FromErr(err)
	c.JSON(res.Code, res)
}
