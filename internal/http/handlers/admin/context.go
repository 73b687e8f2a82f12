package admin

import (
	handlershared "github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

func actorFrom(c *gin.Context) service.Actor {
	return handlershared.Actor(c)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}

func currentUserID(c *gin.Context) uint {
	return actorFrom(c).UserID
}
