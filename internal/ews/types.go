package ews

import "time"

// ItemID 表示提供商条目标识（base64 原生形式）。
type ItemID struct {
	UniqueID  string `json:"unique_id"`
	ChangeKey string `json:"change_key,omitempty"`
}

// Mailbox 表示一个提供商邮箱参与方。
//
// MailboxType 大于 1 的参与方来自目录而非自由地址，视为可信。
type Mailbox struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	RoutingType string `json:"routing_type,omitempty"`
	MailboxType int    `json:"mailbox_type"`
}

// Trusted 报告该参与方是否来自目录。
func (m *Mailbox) Trusted() bool {
	return m != nil && m.MailboxType > 1
}

// CompleteName 表示联系人姓名的完整拆分。
type CompleteName struct {
	GivenName  string `json:"given_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Nickname   string `json:"nickname,omitempty"`
}

// PhysicalAddress 表示一条提供商实体地址记录。
type PhysicalAddress struct {
	Street          string `json:"street,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	CountryOrRegion string `json:"country_or_region,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
}

// Attachment 表示条目上的一个原始附件；Content 只在通过会话
// 按需加载后才会填充。
type Attachment struct {
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	Size        int    `json:"size,omitempty"`
	IsInline    bool   `json:"is_inline"`
	Content     []byte `json:"content,omitempty"`
}

// Item 表示一个原始条目，属性一律经由属性包读取。
type Item struct {
	Bag *PropertyBag
}

// Conversation 表示会话索引中的一条记录。
type Conversation struct {
	ID               ItemID    `json:"id"`
	Topic            string    `json:"topic,omitempty"`
	UniqueSenders    []string  `json:"unique_senders,omitempty"`
	UniqueRecipients []string  `json:"unique_recipients,omitempty"`
	Importance       string    `json:"importance,omitempty"`
	UnreadCount      int       `json:"unread_count"`
	Size             int       `json:"size,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	Preview          string    `json:"preview,omitempty"`
	LastModifiedTime time.Time `json:"last_modified_time,omitzero"`
	ItemIDs          []ItemID  `json:"item_ids,omitempty"`
}

// ConversationNode 表示会话树中的一个节点，Items[0] 是该节点
// 的代表条目。
type ConversationNode struct {
	Items []*Item
}

// ConversationItems 表示按会话标识取回的一批节点。
type ConversationItems struct {
	ConversationID ItemID
	Nodes          []*ConversationNode
}

// Resolution 表示一次目录名称解析的命中结果。
type Resolution struct {
	Mailbox Mailbox
	Contact *Item
}
