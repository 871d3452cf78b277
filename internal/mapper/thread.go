package mapper

import (
	"time"

	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/extract"
)

// Thread 把会话摘要与其节点列表组装成 Thread 实体。
//
// 每个节点取其首个条目生成消息引用而非完整 Message，避免在
// 会话列表里重复拉取全文；单个节点解析失败只污染该元素。
func (m *Mapper) Thread(conv *ews.Conversation, nodes []*ews.ConversationNode) any {
	return m.contain("thread", func() any {
		if conv == nil || conv.ID.UniqueID == "" {
			panic("会话摘要缺少标识")
		}
		thread := &domain.Thread{
			Self:       "/threads/" + mustEncode(conv.ID.UniqueID),
			Senders:    nameRefs(conv.UniqueSenders),
			Recipients: nameRefs(conv.UniqueRecipients),
			Importance: lowerOr(conv.Importance, "normal"),
			Subject:    conv.Topic,
			Size:       conv.Size,
			Read:       conv.UnreadCount > 0,
			Updated:    conv.LastModifiedTime,
		}
		if thread.Updated.IsZero() {
			thread.Updated = time.Now()
		}

		thread.Messages = make([]any, 0, len(nodes))
		for _, node := range nodes {
			thread.Messages = append(thread.Messages, m.nodeRef(node))
		}
		return thread
	})
}

// nodeRef 把会话节点的首条目转为消息引用，失败降级为错误占位。
func (m *Mapper) nodeRef(node *ews.ConversationNode) any {
	return m.contain("thread_message", func() any {
		if node == nil || len(node.Items) == 0 {
			panic("会话节点没有条目")
		}
		bag := node.Items[0].Bag
		id := mustID(bag, "Id")
		kind := domain.ClassifyItem(extract.AsString(extract.Safely(bag, "ItemClass")))
		return &domain.Reference{Ref: kind.TypePrefix() + mustEncode(id.UniqueID)}
	})
}

// nameRefs 把显示名列表转为弱引用列表。
func nameRefs(names []string) []domain.NameReference {
	refs := make([]domain.NameReference, 0, len(names))
	for _, name := range names {
		refs = append(refs, domain.NameReference{
			Ref:  codec.UserLink(name, ""),
			Name: &domain.UserName{Full: name},
		})
	}
	return refs
}
