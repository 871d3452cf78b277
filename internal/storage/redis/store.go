// Package redis 提供 Redis 版主体存储与探测结果缓存。
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/storage"
)

// Store 基于 Redis 的主体存储，同时充当探测结果的共享缓存。
type Store struct {
	rdb *goredis.Client
	log *zap.Logger
}

// New 创建并连接 Redis 存储。
func New(addr, password string, db int, log *zap.Logger) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}

	log.Info("已连接 Redis", zap.String("address", addr), zap.Int("db", db))
	return &Store{rdb: rdb, log: log}, nil
}

func accountKey(id string) string  { return "account:" + id }
func emailKey(email string) string { return "account:email:" + strings.ToLower(email) }
func discoveryKey(p string) string { return "discovery:" + strings.ToLower(p) }

// UpsertAccount 写入或更新账号主体。
func (s *Store) UpsertAccount(ctx context.Context, account *domain.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.Set(ctx, emailKey(account.Email), account.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

// GetAccount 按标识取回账号。
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	data, err := s.rdb.Get(ctx, accountKey(id)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, err
	}
	var account domain.Account
	if err := json.Unmarshal([]byte(data), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByEmail 按邮箱取回账号。
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	id, err := s.rdb.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, id)
}

// Health 探测 Redis 连接。
func (s *Store) Health(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接。
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Get 读取主体的探测结果缓存，实现 discovery.Cache。
func (s *Store) Get(ctx context.Context, principal string) (*domain.DiscoveryResult, bool) {
	data, err := s.rdb.Get(ctx, discoveryKey(principal)).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.log.Warn("读取探测缓存失败", zap.String("principal", principal), zap.Error(err))
		}
		return nil, false
	}
	var result domain.DiscoveryResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Set 写入主体的探测结果缓存。缓存失败只记日志，探测结果本身
// 照常返回。
func (s *Store) Set(ctx context.Context, principal string, result *domain.DiscoveryResult, ttl time.Duration) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, discoveryKey(principal), data, ttl).Err(); err != nil {
		s.log.Warn("写入探测缓存失败", zap.String("principal", principal), zap.Error(err))
	}
}
