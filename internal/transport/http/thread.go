package httptransport

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// listThreads godoc
// @Summary 获取会话列表
// @Description 两阶段聚合收件箱会话；q 非空时在全邮箱范围内按主题检索
// @Tags Threads
// @Produce json
// @Security BearerAuth
// @Param q query string false "主题检索关键字"
// @Param offset query int false "分页偏移"
// @Param limit query int false "单页数量（默认10）"
// @Success 200 {object} Response{data=listResponse}
// @Failure 401 {object} Response
// @Failure 502 {object} Response
// @Router /v1/threads [get]
func (h *Handler) listThreads(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	threads, err := h.mailbox.ListThreads(c.Request.Context(), sess, offset, limit, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, listResponse{Items: threads, Count: len(threads)})
}

// getThread godoc
// @Summary 获取会话详情
// @Description 取回单个会话及其全部成员条目
// @Tags Threads
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话标识"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /v1/threads/{id} [get]
func (h *Handler) getThread(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	thread, err := h.mailbox.GetThread(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, thread)
}

// deleteThread godoc
// @Summary 删除会话
// @Description 删除会话下的全部条目，任何底层失败原样上抛
// @Tags Threads
// @Security BearerAuth
// @Param id path string true "会话标识"
// @Success 204
// @Failure 400 {object} Response
// @Failure 502 {object} Response
// @Router /v1/threads/{id} [delete]
func (h *Handler) deleteThread(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.mailbox.DeleteThread(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	NoContent(c)
}
