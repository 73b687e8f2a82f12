package shared

import (
	"strconv"
	"strings"

	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// 认证上下文 key
const (
	UserIDContextKey      = "user_id"
	UserEmailContextKey   = "user_email"
	UserIsStaffContextKey = "user_is_staff"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// Actor 从认证上下文构造当前操作者，未登录时返回零值
func Actor(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if value, ok := c.Get(UserIDContextKey); ok {
		if id, ok := value.(uint); ok {
			actor.UserID = id
		}
	}
	if value, ok := c.Get(UserIsStaffContextKey); ok {
		if isStaff, ok := value.(bool); ok {
			actor.IsStaff = isStaff
		}
	}
	return actor
}

// ParseUintParam 解析路径中的数字 ID，失败时直接返回错误响应
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
