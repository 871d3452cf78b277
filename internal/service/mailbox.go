// Package service 在群件会话之上实现邮箱、会话与日历操作。
//
// 读操作按实体粒度降级：单个条目映射失败以错误占位出现在结果
// 里；变更操作（删除、答复、会议响应）则把底层失败原样上抛，
// 掩盖变更失败等于掩盖数据丢失。
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/mapper"
	"mailgate/backend/internal/monitoring"
)

// listLimit 列表操作单次取回的条目上限。
const listLimit = 1000

// Mailbox 是围绕单个已认证会话的邮箱操作集合。
type Mailbox struct {
	mapper  *mapper.Mapper
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewMailbox 创建邮箱服务。
func NewMailbox(m *mapper.Mapper, logger *zap.Logger, metrics *monitoring.Metrics) *Mailbox {
	return &Mailbox{mapper: m, logger: logger, metrics: metrics}
}

// call 记录一次提供商调用的耗时与结果。
func (s *Mailbox) call(op string, start time.Time, err error) {
	s.metrics.RecordProviderCall(op, time.Since(start), err)
}

// ListMessages 列出收件箱邮件摘要。
func (s *Mailbox) ListMessages(ctx context.Context, sess ews.Session) ([]any, error) {
	start := time.Now()
	items, err := sess.FindItems(ctx, ews.FolderInbox, ews.PagedView{Limit: listLimit}, "", ews.MessageProperties)
	s.call("find_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("列出邮件失败: %w", err)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, s.mapper.MessageSummary(item))
	}
	return out, nil
}

// GetMessage 取回单封邮件的完整实体。
func (s *Mailbox) GetMessage(ctx context.Context, sess ews.Session, externalID string) (any, error) {
	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	item, err := sess.BindItem(ctx, *id, ews.MessageProperties)
	s.call("bind_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, externalID)
	}
	return s.mapper.Message(item), nil
}

// Reply 答复一封邮件。recipients 为 "all" 时答复所有人，
// 否则只答复发件人。失败原样上抛。
func (s *Mailbox) Reply(ctx context.Context, sess ews.Session, externalID, body, recipients string) error {
	id, err := nativeID(externalID)
	if err != nil {
		return err
	}
	start := time.Now()
	err = sess.Reply(ctx, *id, body, recipients == "all")
	s.call("reply", start, err)
	if err != nil {
		return fmt.Errorf("答复邮件失败: %w", err)
	}
	return nil
}

// ListAttachments 列出条目的附件描述符。
func (s *Mailbox) ListAttachments(ctx context.Context, sess ews.Session, externalID, parentType string) ([]domain.Attachment, error) {
	item, err := s.bindParent(ctx, sess, externalID, parentType)
	if err != nil {
		return nil, err
	}
	return s.mapper.Attachments(externalID, parentType, item), nil
}

// GetAttachmentContent 按需拉取指定下标的附件内容。
func (s *Mailbox) GetAttachmentContent(ctx context.Context, sess ews.Session, externalID, parentType string, index int) (*domain.AttachmentContent, error) {
	item, err := s.bindParent(ctx, sess, externalID, parentType)
	if err != nil {
		return nil, err
	}
	descriptor, ok := s.mapper.AttachmentAt(externalID, parentType, item, index)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%d", ErrAttachmentNotFound, externalID, index)
	}

	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	att, err := sess.LoadAttachment(ctx, *id, index)
	s.call("load_attachment", start, err)
	if err != nil {
		return nil, fmt.Errorf("加载附件内容失败: %w", err)
	}
	content := &domain.AttachmentContent{
		Data: att.Content,
		Mime: descriptor.Type,
		Name: descriptor.Name,
	}
	if content.Mime == "" {
		content.Mime = att.ContentType
	}
	return content, nil
}

// bindParent 取回附件父条目，按父类型选择属性集。
func (s *Mailbox) bindParent(ctx context.Context, sess ews.Session, externalID, parentType string) (*ews.Item, error) {
	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	props := ews.MessageProperties
	if parentType == "events" {
		props = ews.EventProperties
	}
	start := time.Now()
	item, err := sess.BindItem(ctx, *id, props)
	s.call("bind_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, externalID)
	}
	return item, nil
}

// nativeID 把对外标识还原为提供商标识。
func nativeID(externalID string) (*ews.ItemID, error) {
	unique, err := codec.DecodeID(externalID)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidID, externalID, err)
	}
	return &ews.ItemID{UniqueID: unique}, nil
}
