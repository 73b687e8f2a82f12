package shared

import (
	"errors"

	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/i18n"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// serviceErrorCodes 领域错误分类到业务码的映射
var serviceErrorCodes = []struct {
	kind error
	code int
}{
	{kind: service.ErrValidation, code: response.CodeBadRequest},
	{kind: service.ErrNotFound, code: response.CodeNotFound},
	{kind: service.ErrForbidden, code: response.CodeForbidden},
	{kind: service.ErrUnauthenticated, code: response.CodeUnauthorized},
	{kind: service.ErrConflict, code: response.CodeConflict},
}

// RespondServiceError 将服务层错误转换为接口响应，未知错误按 500 处理并记录日志。
func RespondServiceError(c *gin.Context, err error) {
	var domainErr *service.DomainError
	if !errors.As(err, &domainErr) {
		RespondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	code := response.CodeInternal
	for _, item := range serviceErrorCodes {
		if errors.Is(domainErr, item.kind) {
			code = item.code
			break
		}
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), domainErr.Key(), domainErr.Args()...)
	if field := domainErr.Field(); field != "" {
		response.ErrorWithData(c, code, msg, gin.H{"field": field})
		return
	}
	response.Error(c, code, msg)
}

// RespondBindError 请求参数绑定失败
func RespondBindError(c *gin.Context, err error) {
	RequestLog(c).Debugw("request_bind_failed", "error", err)
	RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
}
