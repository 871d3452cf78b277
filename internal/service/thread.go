package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
)

// defaultThreadLimit 会话列表的默认页宽。
const defaultThreadLimit = 10

// ListThreads 两阶段构建会话列表：先取会话摘要页，再按标识
// 批量取回节点，最后按会话标识精确连接。
//
// 连接多重性不等于 1 时记录警告但绝不失败整页：零命中的摘要
// 降级为错误占位元素，多命中取提供商顺序的第一个。
func (s *Mailbox) ListThreads(ctx context.Context, sess ews.Session, offset, limit int, query string) ([]any, error) {
	if limit <= 0 {
		limit = defaultThreadLimit
	}
	view := ews.PagedView{Offset: offset, Limit: limit}

	// 带关键字时从根目录深度过滤，否则只看收件箱。
	folder := ews.FolderInbox
	filter := ""
	if query != "" {
		folder = ews.FolderRoot
		filter = fmt.Sprintf("subject:%q", query)
	}

	start := time.Now()
	conversations, err := sess.FindConversations(ctx, folder, view, filter)
	s.call("find_conversations", start, err)
	if err != nil {
		return nil, fmt.Errorf("列出会话失败: %w", err)
	}
	if len(conversations) == 0 {
		return []any{}, nil
	}

	ids := make([]ews.ItemID, 0, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.ID)
	}
	start = time.Now()
	batches, err := sess.GetConversationItems(ctx, ids)
	s.call("get_conversation_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("取回会话条目失败: %w", err)
	}

	out := make([]any, 0, len(conversations))
	for _, conv := range conversations {
		matches := matchBatches(batches, conv.ID)
		if len(matches) != 1 {
			s.logger.Warn("会话与节点批次连接多重性异常",
				zap.String("conversation", conv.ID.UniqueID),
				zap.Int("matches", len(matches)))
		}
		if len(matches) == 0 {
			out = append(out, domain.NewErrorStub("会话没有对应的节点批次", ""))
			continue
		}
		// 多命中时取第一个。
		out = append(out, s.mapper.Thread(conv, matches[0].Nodes))
	}
	return out, nil
}

// GetThread 取回单个会话。
func (s *Mailbox) GetThread(ctx context.Context, sess ews.Session, externalID string) (any, error) {
	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	batches, err := sess.GetConversationItems(ctx, []ews.ItemID{*id})
	s.call("get_conversation_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("取回会话失败: %w", err)
	}
	matches := matchBatches(batches, *id)
	if len(matches) == 0 || len(matches[0].Nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrThreadNotFound, externalID)
	}
	// 单独取会话时没有摘要记录，用标识合成一份最小摘要。
	conv := &ews.Conversation{ID: *id}
	return s.mapper.Thread(conv, matches[0].Nodes), nil
}

// DeleteThread 删除会话的全部条目。失败原样上抛。
func (s *Mailbox) DeleteThread(ctx context.Context, sess ews.Session, externalID string) error {
	id, err := nativeID(externalID)
	if err != nil {
		return err
	}
	start := time.Now()
	batches, err := sess.GetConversationItems(ctx, []ews.ItemID{*id})
	s.call("get_conversation_items", start, err)
	if err != nil {
		return fmt.Errorf("取回会话失败: %w", err)
	}
	matches := matchBatches(batches, *id)
	if len(matches) == 0 || len(matches[0].Nodes) == 0 {
		return fmt.Errorf("%w: %s", ErrThreadNotFound, externalID)
	}

	var ids []ews.ItemID
	for _, node := range matches[0].Nodes {
		if len(node.Items) == 0 {
			continue
		}
		if itemID, err := node.Items[0].Bag.Get("Id"); err == nil {
			if typed, ok := itemID.(*ews.ItemID); ok {
				ids = append(ids, *typed)
			}
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: %s", ErrThreadNotFound, externalID)
	}

	start = time.Now()
	err = sess.DeleteItems(ctx, ids)
	s.call("delete_items", start, err)
	if err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}

// matchBatches 按会话标识精确匹配节点批次。
func matchBatches(batches []*ews.ConversationItems, id ews.ItemID) []*ews.ConversationItems {
	var matches []*ews.ConversationItems
	for _, batch := range batches {
		if batch.ConversationID.UniqueID == id.UniqueID {
			matches = append(matches, batch)
		}
	}
	return matches
}
