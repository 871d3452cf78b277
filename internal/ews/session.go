package ews

import (
	"context"
	"time"
)

// WellKnownFolder 表示提供商侧的常用文件夹。
type WellKnownFolder string

const (
	FolderInbox    WellKnownFolder = "inbox"
	FolderRoot     WellKnownFolder = "root"
	FolderCalendar WellKnownFolder = "calendar"
	FolderContacts WellKnownFolder = "contacts"
	FolderSent     WellKnownFolder = "sentitems"
)

// PagedView 表示一次分页查询的窗口。
type PagedView struct {
	Offset int
	Limit  int
}

// CalendarView 表示一次日历查询的时间窗口。
type CalendarView struct {
	Start time.Time
	End   time.Time
}

// MeetingResponse 表示对会议邀请的一种答复。
type MeetingResponse string

const (
	RespondAccept    MeetingResponse = "accept"
	RespondDecline   MeetingResponse = "decline"
	RespondTentative MeetingResponse = "tentative"
)

// Session 是与群件提供商的已认证会话。
//
// 所有方法在提供商拒绝或网络失败时原样返回错误，调用方决定
// 如何降级。实现必须允许并发调用。
type Session interface {
	// BindItem 按标识取回单个条目及指定属性集。
	BindItem(ctx context.Context, id ItemID, props PropertySet) (*Item, error)

	// BindAppointment 按标识取回条目对应的日程视图。
	BindAppointment(ctx context.Context, id ItemID) (*Item, error)

	// FindItems 在文件夹中分页列出条目；query 非空时向提供商
	// 下推全文过滤。
	FindItems(ctx context.Context, folder WellKnownFolder, view PagedView, query string, props PropertySet) ([]*Item, error)

	// FindCalendarItems 列出时间窗口内的日历条目。
	FindCalendarItems(ctx context.Context, view CalendarView, props PropertySet) ([]*Item, error)

	// ResolveNames 在目录中解析名称或邮箱；details 为真时同时
	// 取回联系人详情。
	ResolveNames(ctx context.Context, query string, details bool) ([]*Resolution, error)

	// FindConversations 分页列出会话；query 非空时向提供商下推
	// 全文过滤。
	FindConversations(ctx context.Context, folder WellKnownFolder, view PagedView, query string) ([]*Conversation, error)

	// GetConversationItems 按会话标识批量取回会话节点。
	GetConversationItems(ctx context.Context, ids []ItemID) ([]*ConversationItems, error)

	// DeleteItems 删除一组条目。
	DeleteItems(ctx context.Context, ids []ItemID) error

	// Reply 答复一封邮件；replyAll 为真时答复所有收件人。
	Reply(ctx context.Context, id ItemID, body string, replyAll bool) error

	// RespondToMeeting 对会议邀请作出答复。
	RespondToMeeting(ctx context.Context, id ItemID, response MeetingResponse) error

	// LoadAttachment 按需加载条目的第 index 个附件内容。
	LoadAttachment(ctx context.Context, id ItemID, index int) (*Attachment, error)

	// Close 结束会话。
	Close() error
}

// Connector 负责向某个提供商端点发起认证并建立会话。
type Connector interface {
	Connect(ctx context.Context, endpoint, email, password string) (Session, error)
}
