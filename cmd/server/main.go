package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mailgate/backend/internal/auth"
	jwtpkg "mailgate/backend/internal/auth/jwt"
	"mailgate/backend/internal/cache"
	"mailgate/backend/internal/config"
	"mailgate/backend/internal/discovery"
	"mailgate/backend/internal/ews/bridge"
	"mailgate/backend/internal/health"
	"mailgate/backend/internal/logger"
	"mailgate/backend/internal/mapper"
	"mailgate/backend/internal/monitoring"
	"mailgate/backend/internal/service"
	"mailgate/backend/internal/storage"
	"mailgate/backend/internal/storage/memory"
	redisstore "mailgate/backend/internal/storage/redis"
	httptransport "mailgate/backend/internal/transport/http"
)

// main 启动邮件提供商网关服务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.FromApp(cfg.Log.Level, cfg.Log.Development, cfg.Log.File)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting mailgate server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化存储层与探测缓存
	var (
		store      storage.PrincipalStore
		discoCache discovery.Cache
		localCache *cache.Local
	)
	if cfg.Redis.Enabled {
		redisStore, err := redisstore.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			panic(fmt.Sprintf("failed to connect redis: %v", err))
		}
		store = redisStore
		discoCache = redisStore
		log.Info("using redis storage", zap.String("address", cfg.Redis.Address))
	} else {
		store = memory.New()
		localCache = cache.NewLocal(cfg.Discovery.CacheTTL)
		discoCache = localCache
		log.Info("using memory storage (development mode)")
	}

	// 初始化探测服务
	resolver := discovery.NewNetResolver()
	discoveryService := discovery.NewService(
		resolver,
		discoCache,
		cfg.Discovery.CacheTTL,
		cfg.Discovery.Timeout,
		log,
		metrics,
	)

	// 初始化提供商桥接与映射层
	connector := bridge.NewConnector(cfg.Bridge.BaseURL, cfg.Bridge.Timeout, log)
	entityMapper := mapper.New(log, metrics)
	mailboxService := service.NewMailbox(entityMapper, log, metrics)

	// 初始化认证服务
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	sessions := auth.NewSessionRegistry()
	authService := auth.NewService(
		discoveryService,
		connector,
		entityMapper,
		store,
		sessions,
		jwtManager,
		log,
		metrics,
	)

	log.Info("JWT configuration",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.Duration("access_expiry", cfg.JWT.AccessExpiry),
		zap.Duration("refresh_expiry", cfg.JWT.RefreshExpiry),
	)

	// 初始化健康检查
	healthChecker := health.NewHealthChecker(store, resolver, log)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:        cfg,
		Mailbox:       mailboxService,
		AuthService:   authService,
		Discovery:     discoveryService,
		JWTManager:    jwtManager,
		Metrics:       metrics,
		HealthChecker: healthChecker,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		if localCache != nil {
			localCache.Close()
		}
		if err := store.Close(); err != nil {
			log.Warn("store close warning", zap.Error(err))
		}

		log.Info("server stopped")
		return nil
	})

	// 等待所有 goroutine 完成
	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}
