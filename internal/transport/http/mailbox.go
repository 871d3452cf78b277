package httptransport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mailgate/backend/internal/auth"
	"mailgate/backend/internal/discovery"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/middleware"
	"mailgate/backend/internal/security"
	"mailgate/backend/internal/service"
)

// Handler 聚合邮箱相关的 HTTP 处理逻辑。
type Handler struct {
	mailbox     *service.Mailbox
	auth        *auth.Service
	discovery   *discovery.Service
	attachments *security.AttachmentPolicy
}

// NewHandler 创建邮箱处理器。
func NewHandler(mailbox *service.Mailbox, authService *auth.Service, disc *discovery.Service) *Handler {
	return &Handler{
		mailbox:     mailbox,
		auth:        authService,
		discovery:   disc,
		attachments: security.NewAttachmentPolicy(),
	}
}

// session 取回当前账号的提供商会话。会话不在线时写出 401。
func (h *Handler) session(c *gin.Context) (ews.Session, bool) {
	accountID := c.GetString(middleware.ContextAccountID)
	sess, ok := h.auth.Session(accountID)
	if !ok {
		Unauthorized(c, MsgSessionExpired)
		return nil, false
	}
	return sess, true
}

type listResponse struct {
	Items []any `json:"items"`
	Count int   `json:"count"`
}

// listMessages godoc
// @Summary 获取邮件列表
// @Description 返回收件箱内的邮件摘要，映射失败的条目以错误占位出现
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=listResponse}
// @Failure 401 {object} Response
// @Failure 502 {object} Response
// @Router /v1/messages [get]
func (h *Handler) listMessages(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	items, err := h.mailbox.ListMessages(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, listResponse{Items: items, Count: len(items)})
}

// getMessage godoc
// @Summary 获取邮件详情
// @Description 查看单封邮件，包含正文与附件描述符
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "邮件标识"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /v1/messages/{id} [get]
func (h *Handler) getMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	message, err := h.mailbox.GetMessage(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, message)
}

type replyRequest struct {
	Body       string `json:"body" binding:"required"`
	Recipients string `json:"recipients"`
}

// replyMessage godoc
// @Summary 答复邮件
// @Description 答复一封邮件；recipients 为 "all" 时答复所有收件人
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "邮件标识"
// @Param request body replyRequest true "答复内容"
// @Success 204
// @Failure 400 {object} Response
// @Failure 502 {object} Response
// @Router /v1/messages/{id}/reply [post]
func (h *Handler) replyMessage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}
	if err := h.mailbox.Reply(c.Request.Context(), sess, c.Param("id"), req.Body, req.Recipients); err != nil {
		respondServiceError(c, err)
		return
	}
	NoContent(c)
}

// listAttachments godoc
// @Summary 列出附件
// @Description 返回条目的附件描述符，不含内容
// @Tags Attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "条目标识"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /v1/messages/{id}/attachments [get]
func (h *Handler) listAttachments(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		attachments, err := h.mailbox.ListAttachments(c.Request.Context(), sess, c.Param("id"), parentType)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		Success(c, attachments)
	}
}

// getAttachment godoc
// @Summary 下载附件
// @Description 按下标按需拉取附件内容，直接返回二进制流
// @Tags Attachments
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path string true "条目标识"
// @Param index path int true "附件下标"
// @Success 200 {file} binary
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /v1/messages/{id}/attachments/{index} [get]
func (h *Handler) getAttachment(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			BadRequest(c, MsgInvalidIndex)
			return
		}
		content, err := h.mailbox.GetAttachmentContent(c.Request.Context(), sess, c.Param("id"), parentType, index)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		// 附件下载不使用统一响应格式，直接返回二进制流。
		// 危险内容降级为中性类型，防止浏览器内联执行。
		mime := h.attachments.SafeContentType(content.Mime, content.Name, content.Data)
		c.Header("Content-Disposition", "attachment; filename=\""+content.Name+"\"")
		c.Header("Content-Length", fmt.Sprintf("%d", len(content.Data)))
		c.Data(http.StatusOK, mime, content.Data)
	}
}
