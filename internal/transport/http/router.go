package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"mailgate/backend/internal/auth"
	jwtpkg "mailgate/backend/internal/auth/jwt"
	"mailgate/backend/internal/config"
	"mailgate/backend/internal/discovery"
	"mailgate/backend/internal/health"
	"mailgate/backend/internal/middleware"
	"mailgate/backend/internal/monitoring"
	"mailgate/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config        *config.Config
	Mailbox       *service.Mailbox
	AuthService   *auth.Service
	Discovery     *discovery.Service
	JWTManager    *jwtpkg.Manager
	Metrics       *monitoring.Metrics
	HealthChecker *health.HealthChecker
	Logger        *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	monitor := middleware.NewMonitoringMiddleware(deps.Metrics, deps.Logger)
	router.Use(monitor.PanicRecovery())
	router.Use(monitor.HTTPMetrics())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())

	// 全局请求体上限 1MB：网关只收 JSON 命令，不收大载荷
	router.Use(middleware.RequestSizeLimit(1 << 20))

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	handler := NewHandler(deps.Mailbox, deps.AuthService, deps.Discovery)
	authHandler := NewAuthHandler(deps.AuthService)

	jwtAuth := middleware.NewJWTAuth(deps.JWTManager, deps.Logger)
	loginLimit := middleware.NewRateLimiter(deps.Config.RateLimit.LoginRPS, deps.Config.RateLimit.LoginBurst)

	// Swagger 文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 监控与健康检查
	router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	if deps.HealthChecker != nil {
		router.GET("/live", gin.WrapH(deps.HealthChecker.Handler()))
		router.GET("/ready", gin.WrapH(deps.HealthChecker.Handler()))
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// V1 API
	v1 := router.Group("/v1")
	{
		// ========== Discovery Routes（无需认证） ==========
		v1.GET("/discovery/:domain", handler.discoverDomain)

		// ========== Auth Routes ==========
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", loginLimit.Limit(), authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.GET("/me", jwtAuth.RequireAuth(), authHandler.Me)
		}

		// ========== Mailbox Routes（需要认证与在线会话） ==========
		authed := v1.Group("")
		authed.Use(jwtAuth.RequireAuth())
		{
			// 邮件
			authed.GET("/messages", handler.listMessages)
			authed.GET("/messages/:id", handler.getMessage)
			authed.POST("/messages/:id/reply", handler.replyMessage)
			authed.GET("/messages/:id/attachments", handler.listAttachments("messages"))
			authed.GET("/messages/:id/attachments/:index", handler.getAttachment("messages"))

			// 会话
			authed.GET("/threads", handler.listThreads)
			authed.GET("/threads/:id", handler.getThread)
			authed.DELETE("/threads/:id", handler.deleteThread)

			// 日历
			authed.GET("/events", handler.listEvents)
			authed.GET("/events/:id", handler.getEvent)
			authed.PATCH("/events/:id", handler.respondEvent)
			authed.GET("/events/:id/attachments", handler.listAttachments("events"))
			authed.GET("/events/:id/attachments/:index", handler.getAttachment("events"))

			// 目录与通讯录
			authed.GET("/users", handler.searchUsers)
			authed.GET("/users/:name", handler.getUser)
			authed.GET("/contacts", handler.searchContacts)
		}
	}

	return router
}
