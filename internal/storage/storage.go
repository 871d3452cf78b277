// Package storage 定义账号主体的持久化接口。
package storage

import (
	"context"
	"errors"

	"mailgate/backend/internal/domain"
)

// ErrAccountNotFound 账号不存在。
var ErrAccountNotFound = errors.New("账号不存在")

// PrincipalStore 保存已认证账号的主体与声明。
type PrincipalStore interface {
	// UpsertAccount 写入或更新账号主体。
	UpsertAccount(ctx context.Context, account *domain.Account) error
	// GetAccount 按标识取回账号，不存在时返回 ErrAccountNotFound。
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	// GetAccountByEmail 按邮箱取回账号，不存在时返回 ErrAccountNotFound。
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Health 探测存储是否可用。
	Health(ctx context.Context) error
	// Close 释放底层资源。
	Close() error
}
