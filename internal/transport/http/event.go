package httptransport

import (
	"github.com/gin-gonic/gin"
)

// listEvents godoc
// @Summary 获取日历列表
// @Description 返回未来一周的日历条目
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=listResponse}
// @Failure 401 {object} Response
// @Failure 502 {object} Response
// @Router /v1/events [get]
func (h *Handler) listEvents(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	events, err := h.mailbox.ListEvents(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, listResponse{Items: events, Count: len(events)})
}

// getEvent godoc
// @Summary 获取日历条目详情
// @Description 取回单个日历条目，包含日程视图上的答复状态
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "条目标识"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /v1/events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	event, err := h.mailbox.GetEvent(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, event)
}

type respondEventRequest struct {
	Response string `json:"response" binding:"required"`
}

// respondEvent godoc
// @Summary 答复会议邀请
// @Description 接受、拒绝或暂定答复会议邀请，返回更新后的条目
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "条目标识"
// @Param request body respondEventRequest true "答复动作：accept/decline/tentative"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 422 {object} Response
// @Failure 502 {object} Response
// @Router /v1/events/{id} [patch]
func (h *Handler) respondEvent(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req respondEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}
	event, err := h.mailbox.RespondEvent(c.Request.Context(), sess, c.Param("id"), req.Response)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, event)
}
