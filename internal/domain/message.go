package domain

import "time"

// Party 表示邮件的一方参与者：链接、显示名、邮箱与可信标记。
//
// Trusted 表示该参与方来自目录而非自由地址。
type Party struct {
	Ref      string    `json:"$ref,omitempty"`
	Name     *UserName `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	OnBehalf *Party    `json:"onbehalf,omitempty"`
	Trusted  bool      `json:"trusted"`
}

// NameReference 表示只携带链接与显示名的弱引用。
type NameReference struct {
	Ref  string    `json:"$ref,omitempty"`
	Name *UserName `json:"name,omitempty"`
}

// Subject 保留会话主题与当前主题两个视角。
type Subject struct {
	Original string `json:"original"`
	Current  string `json:"current"`
}

// MessageBody 同时保留 HTML 与纯文本两种正文。
type MessageBody struct {
	HTML string `json:"html"`
	Text string `json:"text,omitempty"`
}

// Recipient 表示收件人列表中的一项。
type Recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Message 表示一封已规范化的邮件。
type Message struct {
	Self        string       `json:"$self"`
	Href        string       `json:"$href,omitempty"`
	Thread      *Reference   `json:"thread,omitempty"`
	Sender      *Party       `json:"sender,omitempty"`
	Recipient   *Party       `json:"recipient,omitempty"`
	Sent        *time.Time   `json:"sent,omitempty"`
	Created     *time.Time   `json:"created,omitempty"`
	Importance  string       `json:"importance,omitempty"`
	Subject     Subject      `json:"subject"`
	Read        *bool        `json:"read"`
	Size        int          `json:"size,omitempty"`
	Body        *MessageBody `json:"message,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Recipients  []Recipient  `json:"recipients,omitempty"`
}

// ReminderWhen 表示提醒触发时刻。
type ReminderWhen struct {
	Minutes int        `json:"minutes,omitempty"`
	By      *time.Time `json:"by"`
}

// Reminder 表示日历条目的提醒设置。
type Reminder struct {
	Show bool         `json:"show"`
	When ReminderWhen `json:"when"`
}

// Attendees 按必选与可选分组的与会人。
type Attendees struct {
	Required []Recipient `json:"required,omitempty"`
	Optional []Recipient `json:"optional,omitempty"`
}

// Event 表示一个已规范化的日历条目，在邮件字段之上扩展日程
// 信息。Response 是当前用户的答复状态；Action 仅在条目本身是
// 一封会议答复邮件时出现。
type Event struct {
	Message
	Reminder  *Reminder  `json:"reminder,omitempty"`
	Starts    *time.Time `json:"starts,omitempty"`
	Ends      *time.Time `json:"ends,omitempty"`
	Location  string     `json:"location,omitempty"`
	Recurring bool       `json:"recurring"`
	Cancelled bool       `json:"cancelled"`
	Attendees *Attendees `json:"attendees,omitempty"`
	Organizer *Reference `json:"organizer,omitempty"`
	Response  string     `json:"response,omitempty"`
	Action    string     `json:"action,omitempty"`
}

// Thread 表示一个已规范化的会话。Messages 的元素是消息引用，
// 个别解析失败的元素降级为错误占位。
type Thread struct {
	Self       string          `json:"$self"`
	Senders    []NameReference `json:"senders"`
	Recipients []NameReference `json:"recipients"`
	Importance string          `json:"importance"`
	Messages   []any           `json:"messages"`
	Subject    string          `json:"subject"`
	Size       int             `json:"size,omitempty"`
	Read       bool            `json:"read"`
	Updated    time.Time       `json:"updated"`
}

// Attachment 表示附件的描述符；内容通过引用路径按需拉取。
type Attachment struct {
	Ref         string `json:"$ref"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Size        int    `json:"size,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	Disposition string `json:"disposition,omitempty"`
	Content     string `json:"content,omitempty"`
}

// AttachmentContent 表示按需拉取到的附件内容。
type AttachmentContent struct {
	Data []byte
	Mime string
	Name string
}
