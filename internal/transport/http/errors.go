package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mailgate/backend/internal/auth"
	"mailgate/backend/internal/service"
	"mailgate/backend/internal/storage"
)

// 通用错误消息
const (
	// 请求相关
	MsgInvalidRequest = "请求参数格式错误"
	MsgInvalidIndex   = "附件下标格式无效"

	// 认证相关
	MsgAuthRequired       = "需要登录认证"
	MsgInvalidCredentials = "邮箱或密码错误"
	MsgTokenInvalid       = "无效的访问令牌"
	MsgSessionExpired     = "提供商会话已失效，请重新登录"

	// 服务器错误
	MsgInternalError = "服务器内部错误，请稍后重试"
	MsgProviderError = "提供商暂时不可用，请稍后重试"
)

// respondServiceError 把业务错误翻译为 HTTP 响应。
//
// 未命中任何已知哨兵的错误一律视为提供商侧失败。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrThreadNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAttachmentNotFound),
		errors.Is(err, storage.ErrAccountNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, auth.ErrMissingCredentials):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnclearResponse):
		UnprocessableEntity(c, err.Error())
	case errors.Is(err, auth.ErrProviderRejected):
		Unauthorized(c, MsgInvalidCredentials)
	case errors.Is(err, auth.ErrNoProvider),
		errors.Is(err, auth.ErrNotImplemented):
		UnprocessableEntity(c, err.Error())
	default:
		BadGateway(c, MsgProviderError)
	}
}
