package public

import (
	handlershared "github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.UserIDContextKey, "error.user_id_invalid", "error.user_id_type_invalid")
}

func actorFrom(c *gin.Context) service.Actor {
	return handlershared.Actor(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}
