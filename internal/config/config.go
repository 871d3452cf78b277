package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig 定义 HTTP 服务器的监听配置参数
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 8080
}

// BridgeConfig 定义提供商桥接服务的连接配置
type BridgeConfig struct {
	BaseURL string        // 桥接服务地址，如 "http://localhost:9090"
	Timeout time.Duration // 单次桥接调用超时，默认 30 秒
}

// DiscoveryConfig 定义端点探测的行为配置
type DiscoveryConfig struct {
	Timeout  time.Duration // 一轮探测的总超时，默认 5 秒
	CacheTTL time.Duration // 探测结果缓存时长，默认 1 小时
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 启用彩色输出和详细堆栈信息
	File        string // 日志文件路径，留空时只写标准输出
}

// RedisConfig 定义 Redis 存储配置
type RedisConfig struct {
	Enabled  bool   // 是否启用 Redis，关闭时使用内存存储
	Address  string // Redis 服务地址，格式 "host:port"，默认 "localhost:6379"
	Password string // Redis 认证密码，留空表示无密码
	DB       int    // Redis 数据库编号，默认 0
}

// JWTConfig 定义 JWT 认证相关配置
type JWTConfig struct {
	Secret        string        // JWT 签名密钥，必须至少 32 字符
	Issuer        string        // JWT 签发者标识，默认 "mailgate"
	AccessExpiry  time.Duration // 访问令牌有效期，默认 15 分钟
	RefreshExpiry time.Duration // 刷新令牌有效期，默认 7 天
}

// RateLimitConfig 定义登录接口的限流配置
type RateLimitConfig struct {
	LoginRPS   float64 // 每秒允许的登录尝试数，默认 1
	LoginBurst int     // 允许的突发登录尝试数，默认 5
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server    ServerConfig    // HTTP 服务器配置
	Bridge    BridgeConfig    // 提供商桥接配置
	Discovery DiscoveryConfig // 端点探测配置
	CORS      CORSConfig      // 跨域配置
	Log       LogConfig       // 日志配置
	Redis     RedisConfig     // Redis 配置
	JWT       JWTConfig       // JWT 认证配置
	RateLimit RateLimitConfig // 限流配置
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量（最高优先级）
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: MAILGATE_
// 例如: MAILGATE_SERVER_HOST, MAILGATE_JWT_SECRET
//
// .env 文件位置：
//   - 当前目录的 .env
//   - 父目录的 .env（如果在 backend/ 子目录中运行）
func Load() (*Config, error) {
	// 尝试加载 .env 文件（静默失败，因为 .env 文件是可选的）
	loadEnvFile()

	viper.SetEnvPrefix("mailgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("bridge.base_url", "http://localhost:9090")
	viper.SetDefault("bridge.timeout", "30s")
	viper.SetDefault("discovery.timeout", "5s")
	viper.SetDefault("discovery.cache_ttl", "1h")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.issuer", "mailgate")
	viper.SetDefault("jwt.access_expiry", "15m")
	viper.SetDefault("jwt.refresh_expiry", "168h")
	viper.SetDefault("ratelimit.login_rps", 1.0)
	viper.SetDefault("ratelimit.login_burst", 5)

	bridgeURL := viper.GetString("bridge.base_url")
	if !strings.HasPrefix(bridgeURL, "http://") && !strings.HasPrefix(bridgeURL, "https://") {
		return nil, fmt.Errorf("invalid bridge.base_url: %q", bridgeURL)
	}

	bridgeTimeout, err := time.ParseDuration(viper.GetString("bridge.timeout"))
	if err != nil {
		bridgeTimeout = 30 * time.Second
	}

	discoveryTimeout, err := time.ParseDuration(viper.GetString("discovery.timeout"))
	if err != nil {
		discoveryTimeout = 5 * time.Second
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("discovery.cache_ttl"))
	if err != nil {
		cacheTTL = time.Hour
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("jwt.access_expiry"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("jwt.refresh_expiry"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	jwtSecret := viper.GetString("jwt.secret")

	// 安全检查：禁止使用默认的 JWT secret
	if jwtSecret == "change-me-in-production" {
		return nil, fmt.Errorf("SECURITY ERROR: JWT secret cannot be the default value. Please set MAILGATE_JWT_SECRET environment variable")
	}

	// JWT secret 必须至少 32 字符
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("SECURITY ERROR: JWT secret must be at least 32 characters long")
	}

	loginRPS := viper.GetFloat64("ratelimit.login_rps")
	if loginRPS <= 0 {
		loginRPS = 1.0
	}
	loginBurst := viper.GetInt("ratelimit.login_burst")
	if loginBurst <= 0 {
		loginBurst = 5
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Bridge: BridgeConfig{
			BaseURL: bridgeURL,
			Timeout: bridgeTimeout,
		},
		Discovery: DiscoveryConfig{
			Timeout:  discoveryTimeout,
			CacheTTL: cacheTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
			File:        viper.GetString("log.file"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:        jwtSecret,
			Issuer:        viper.GetString("jwt.issuer"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   loginRPS,
			LoginBurst: loginBurst,
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 加载顺序：
//  1. 当前目录的 .env
//  2. 父目录的 .env（用于从 backend/ 子目录运行的情况）
//
// 注意：
//   - 如果文件不存在，静默失败（.env 是可选的）
//   - 环境变量不会被覆盖（已存在的环境变量优先级更高）
func loadEnvFile() {
	// 尝试当前目录的 .env
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	// 尝试父目录的 .env（从 backend/ 目录运行时）
	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
