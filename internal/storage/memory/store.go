// Package memory 提供内存版主体存储，适合开发和单机部署。
package memory

import (
	"context"
	"strings"
	"sync"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/storage"
)

// Store 内存主体存储。
type Store struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]string
}

// New 创建内存存储。
func New() *Store {
	return &Store{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
	}
}

// UpsertAccount 写入或更新账号主体。
func (s *Store) UpsertAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *account
	s.byID[account.ID] = &clone
	s.byEmail[strings.ToLower(account.Email)] = account.ID
	return nil
}

// GetAccount 按标识取回账号。
func (s *Store) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

// GetAccountByEmail 按邮箱取回账号。
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	return s.GetAccount(ctx, id)
}

// Health 内存存储永远可用。
func (s *Store) Health(context.Context) error { return nil }

// Close 无资源可释放。
func (s *Store) Close() error { return nil }
