package httptransport

import (
	"github.com/gin-gonic/gin"
)

// searchUsers godoc
// @Summary 检索目录用户
// @Description 按名称或邮箱在目录中检索用户
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param q query string true "检索关键字"
// @Success 200 {object} Response{data=listResponse}
// @Failure 400 {object} Response
// @Failure 502 {object} Response
// @Router /v1/users [get]
func (h *Handler) searchUsers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	users, err := h.mailbox.SearchUsers(c.Request.Context(), sess, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, listResponse{Items: users, Count: len(users)})
}

// getUser godoc
// @Summary 获取目录用户
// @Description 按名称或邮箱取回单个目录用户
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param name path string true "名称或邮箱"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /v1/users/{name} [get]
func (h *Handler) getUser(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	user, err := h.mailbox.GetUser(c.Request.Context(), sess, c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, user)
}

// searchContacts godoc
// @Summary 检索通讯录
// @Description 在个人通讯录中检索联系人，q 为空时列出全部
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param q query string false "检索关键字"
// @Success 200 {object} Response{data=listResponse}
// @Failure 502 {object} Response
// @Router /v1/contacts [get]
func (h *Handler) searchContacts(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	contacts, err := h.mailbox.SearchContacts(c.Request.Context(), sess, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, listResponse{Items: contacts, Count: len(contacts)})
}

// discoverDomain godoc
// @Summary 探测域名端点
// @Description 探测邮件域名的 exchange/imaps/ldap/smtp 端点，缺失的端点为 null
// @Tags Discovery
// @Produce json
// @Param domain path string true "邮件域名"
// @Success 200 {object} Response{data=domain.DiscoveryResult}
// @Router /v1/discovery/{domain} [get]
func (h *Handler) discoverDomain(c *gin.Context) {
	result := h.discovery.Discover(c.Request.Context(), c.Param("domain"))
	Success(c, result)
}
