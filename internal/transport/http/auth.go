package httptransport

import (
	"github.com/gin-gonic/gin"

	"mailgate/backend/internal/auth"
	"mailgate/backend/internal/middleware"
)

// AuthHandler 账号认证相关的 HTTP 处理器。
type AuthHandler struct {
	auth *auth.Service
}

// NewAuthHandler 创建认证处理器。
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login godoc
// @Summary 账号登录
// @Description 探测邮箱域名的提供商端点并认证，成功后返回账号与令牌对
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录凭据"
// @Success 200 {object} Response{data=auth.LoginResult}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 422 {object} Response
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, result)
}

// Refresh godoc
// @Summary 刷新访问令牌
// @Description 用刷新令牌换取新的访问令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body refreshRequest true "刷新令牌"
// @Success 200 {object} Response{data=refreshResponse}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	accessToken, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		Unauthorized(c, MsgTokenInvalid)
		return
	}
	Success(c, refreshResponse{AccessToken: accessToken})
}

// Me godoc
// @Summary 当前账号
// @Description 返回当前登录账号的主体与 OpenID 风格声明
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=domain.Account}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := c.GetString(middleware.ContextAccountID)
	account, err := h.auth.Account(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, account)
}
