// Package auth 负责按邮箱域名定位提供商并完成登录。
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailgate/backend/internal/auth/jwt"
	"mailgate/backend/internal/discovery"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/mapper"
	"mailgate/backend/internal/monitoring"
	"mailgate/backend/internal/storage"
)

var (
	// ErrMissingCredentials 邮箱或密码缺失，属于调用方契约违规。
	ErrMissingCredentials = errors.New("必须同时提供邮箱和密码")
	// ErrNotImplemented 提供商只暴露 IMAP，尚不支持。
	ErrNotImplemented = errors.New("该提供商仅支持 IMAP，暂未实现")
	// ErrNoProvider 域名下找不到任何登录提供商。
	ErrNoProvider = errors.New("无法定位登录提供商")
	// ErrProviderRejected 提供商拒绝了凭据。
	ErrProviderRejected = errors.New("提供商拒绝登录")
)

// office365Endpoint 微软托管租户的固定探测端点。
const office365Endpoint = "https://autodiscover-s.outlook.com/autodiscover/autodiscover.svc"

// LoginResult 一次成功登录的产物。
type LoginResult struct {
	Account *domain.Account `json:"account"`
	Tokens  *jwt.TokenPair  `json:"tokens"`
}

// Service 账号认证服务。
type Service struct {
	discovery *discovery.Service
	connector ews.Connector
	mapper    *mapper.Mapper
	store     storage.PrincipalStore
	sessions  *SessionRegistry
	tokens    *jwt.Manager
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewService 创建认证服务。
func NewService(
	disc *discovery.Service,
	connector ews.Connector,
	m *mapper.Mapper,
	store storage.PrincipalStore,
	sessions *SessionRegistry,
	tokens *jwt.Manager,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
) *Service {
	return &Service{
		discovery: disc,
		connector: connector,
		mapper:    m,
		store:     store,
		sessions:  sessions,
		tokens:    tokens,
		logger:    logger,
		metrics:   metrics,
	}
}

// AccountID 由邮箱确定性派生账号标识：同一邮箱永远得到同一
// 账号。
func AccountID(email string) string {
	normalized := strings.TrimSpace(strings.ToLower(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(normalized)).String()
}

// Authenticate 认证一个邮箱账号：探测其域名的提供商端点，向
// exchange 端点登录，解析本人目录条目并签发令牌对。
func (s *Service) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	email = strings.TrimSpace(strings.ToLower(email))
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return nil, fmt.Errorf("%w: 邮箱格式非法", ErrMissingCredentials)
	}
	dom := email[at+1:]

	disc := s.discovery.DiscoverPrincipal(ctx, email, dom)
	switch {
	case disc.Exchange != nil:
		return s.loginExchange(ctx, email, password, disc.Exchange)
	case disc.IMAPS != nil:
		s.metrics.RecordAuthAttempt("not_implemented")
		return nil, ErrNotImplemented
	default:
		s.metrics.RecordAuthAttempt("no_provider")
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, dom)
	}
}

func (s *Service) loginExchange(ctx context.Context, email, password string, ep *domain.ServiceEndpoint) (*LoginResult, error) {
	endpoint := endpointURL(ep.Host)
	s.logger.Debug("使用探测端点登录", zap.String("endpoint", endpoint))

	sess, err := s.connector.Connect(ctx, endpoint, email, password)
	if err != nil {
		s.metrics.RecordAuthAttempt("rejected")
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}

	resolutions, err := sess.ResolveNames(ctx, email, true)
	if err != nil || len(resolutions) == 0 {
		s.metrics.RecordAuthAttempt("no_directory_entry")
		_ = sess.Close()
		return nil, fmt.Errorf("%w: 无法解析账号的目录条目", ErrProviderRejected)
	}
	user, ok := s.mapper.User(resolutions[0]).(*domain.User)
	if !ok {
		s.metrics.RecordAuthAttempt("mapping_failed")
		_ = sess.Close()
		return nil, fmt.Errorf("%w: 目录条目无法规范化", ErrProviderRejected)
	}

	account := buildAccount(email, user)
	// 主体入库失败不阻断登录，会话本身已经建立。
	if err := s.store.UpsertAccount(ctx, account); err != nil {
		s.logger.Error("账号主体入库失败", zap.String("account", account.ID), zap.Error(err))
	}
	s.sessions.Put(account.ID, sess)

	tokens, err := s.tokens.GenerateTokenPair(account.ID, email)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	s.metrics.RecordAuthAttempt("success")
	return &LoginResult{Account: account, Tokens: tokens}, nil
}

// Refresh 用刷新令牌换取新的访问令牌。
func (s *Service) Refresh(refreshToken string) (string, error) {
	return s.tokens.RefreshAccessToken(refreshToken)
}

// Account 按账号标识取回主体。
func (s *Service) Account(ctx context.Context, id string) (*domain.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// Session 取回账号的在线会话。
func (s *Service) Session(accountID string) (ews.Session, bool) {
	return s.sessions.Get(accountID)
}

// endpointURL 把探测到的 exchange 主机名换算为登录端点。
func endpointURL(host string) string {
	if host == "autodiscover-s.outlook.com" {
		return office365Endpoint
	}
	if strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host + "/autodiscover/autodiscover.svc"
}

// buildAccount 由规范化后的目录条目组装账号主体与声明。
func buildAccount(email string, user *domain.User) *domain.Account {
	claims := domain.Claims{
		Sub:       AccountID(email),
		Email:     email,
		Picture:   user.Photo,
		Phone:     user.Phone,
		UpdatedAt: time.Now().Unix(),
	}
	if user.Name != nil {
		claims.Name = user.Name.Full
		claims.GivenName = user.Name.First
		claims.FamilyName = user.Name.Last
	}
	if user.Address != nil {
		claims.Address = fmt.Sprintf("%s\n%s, %s %s\n%s",
			user.Address.Street, user.Address.City, user.Address.State,
			user.Address.Postal, user.Address.Country)
	}
	return &domain.Account{
		ID:        claims.Sub,
		Email:     email,
		Claims:    claims,
		CreatedAt: time.Now(),
	}
}
