package service

import (
	"context"
	"fmt"
	"time"

	"mailgate/backend/internal/ews"
)

// SearchUsers 在目录中检索用户。
func (s *Mailbox) SearchUsers(ctx context.Context, sess ews.Session, query string) ([]any, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	start := time.Now()
	resolutions, err := sess.ResolveNames(ctx, query, true)
	s.call("resolve_names", start, err)
	if err != nil {
		return nil, fmt.Errorf("目录检索失败: %w", err)
	}
	out := make([]any, 0, len(resolutions))
	for _, res := range resolutions {
		out = append(out, s.mapper.User(res))
	}
	return out, nil
}

// GetUser 按名称或邮箱取回单个目录用户。
func (s *Mailbox) GetUser(ctx context.Context, sess ews.Session, name string) (any, error) {
	if name == "" {
		return nil, ErrEmptyQuery
	}
	start := time.Now()
	resolutions, err := sess.ResolveNames(ctx, name, true)
	s.call("resolve_names", start, err)
	if err != nil {
		return nil, fmt.Errorf("目录检索失败: %w", err)
	}
	if len(resolutions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return s.mapper.User(resolutions[0]), nil
}

// SearchContacts 在个人通讯录中检索联系人。
func (s *Mailbox) SearchContacts(ctx context.Context, sess ews.Session, query string) ([]any, error) {
	filter := ""
	if query != "" {
		filter = "subject:" + query
	}
	start := time.Now()
	items, err := sess.FindItems(ctx, ews.FolderContacts, ews.PagedView{Limit: listLimit}, filter, ews.UserProperties)
	s.call("find_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("检索联系人失败: %w", err)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, s.mapper.Contact(item))
	}
	return out, nil
}
