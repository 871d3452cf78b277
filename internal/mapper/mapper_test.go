package mapper

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
)

func newMapper() *Mapper {
	return New(zap.NewNop(), nil)
}

func newItem(props map[string]any) *ews.Item {
	bag := ews.NewPropertyBag()
	for k, v := range props {
		bag.Set(k, v)
	}
	return &ews.Item{Bag: bag}
}

func rawID(s string) *ews.ItemID {
	return &ews.ItemID{UniqueID: base64.StdEncoding.EncodeToString([]byte(s))}
}

func TestMessage(t *testing.T) {
	m := newMapper()
	sent := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("完整映射", func(t *testing.T) {
		item := newItem(map[string]any{
			"Id":                rawID("msg-1"),
			"ConversationId":    rawID("conv-1"),
			"ItemClass":         "IPM.Note",
			"Subject":           "status update",
			"ConversationTopic": "status",
			"Sender":            &ews.Mailbox{Name: "Jane Doe", Address: "jane@example.com", MailboxType: 2},
			"DateTimeSent":      sent,
			"Importance":        "High",
			"IsRead":            true,
			"Body":              "<p>hi</p>",
			"ToRecipients":      []*ews.Mailbox{{Name: "Bob", Address: "bob@example.com"}},
			"Attachments": []*ews.Attachment{
				{Name: "a.pdf", ContentType: "application/pdf", Size: 123},
				{Name: "logo.png", ContentType: "image/png", IsInline: true},
			},
		})

		result := m.Message(item)
		msg, ok := result.(*domain.Message)
		require.True(t, ok)

		assert.Contains(t, msg.Self, "/messages/")
		assert.Equal(t, "status", msg.Subject.Original)
		assert.Equal(t, "status update", msg.Subject.Current)
		assert.Equal(t, "high", msg.Importance)
		require.NotNil(t, msg.Sender)
		assert.Equal(t, "/users/jane", msg.Sender.Ref)
		assert.True(t, msg.Sender.Trusted)
		require.NotNil(t, msg.Read)
		assert.True(t, *msg.Read)
		require.NotNil(t, msg.Thread)
		assert.Contains(t, msg.Thread.Ref, "/threads/")
		assert.Equal(t, "<p>hi</p>", msg.Body.HTML)
		require.Len(t, msg.Attachments, 2)
		assert.Equal(t, "attachment", msg.Attachments[0].Disposition)
		assert.Equal(t, "inline", msg.Attachments[1].Disposition)
		require.Len(t, msg.Recipients, 1)
		assert.Equal(t, "bob@example.com", msg.Recipients[0].Email)
	})

	t.Run("发件人属性有序后备", func(t *testing.T) {
		item := newItem(map[string]any{
			"Id":   rawID("msg-2"),
			"From": &ews.Mailbox{Name: "Fallback", Address: "fb@example.com"},
		})
		msg := m.Message(item).(*domain.Message)
		require.NotNil(t, msg.Sender)
		assert.Equal(t, "fb@example.com", msg.Sender.Email)
	})

	t.Run("read 故障态降级为 null", func(t *testing.T) {
		item := newItem(map[string]any{"Id": rawID("msg-3")})
		item.Bag.SetFault("IsRead", assert.AnError)
		msg := m.Message(item).(*domain.Message)
		assert.Nil(t, msg.Read)
	})
}

func TestMessageErrorIsolation(t *testing.T) {
	m := newMapper()
	items := make([]*ews.Item, 5)
	for i := range items {
		items[i] = newItem(map[string]any{
			"Id":      rawID("batch"),
			"Subject": "ok",
		})
	}
	// 第 3 个条目缺少必填标识。
	items[2] = newItem(map[string]any{"Subject": "broken"})

	results := make([]any, 0, len(items))
	for _, item := range items {
		results = append(results, m.Message(item))
	}

	require.Len(t, results, 5)
	for i, r := range results {
		if i == 2 {
			stub, ok := r.(*domain.ErrorStub)
			require.True(t, ok)
			assert.Equal(t, "#/error", stub.Self)
			assert.NotEmpty(t, stub.Error.Message)
			assert.NotEmpty(t, stub.Error.Stack)
		} else {
			_, ok := r.(*domain.Message)
			assert.True(t, ok, "元素 %d 不应受第 3 个失败影响", i)
		}
	}
}

func TestEvent(t *testing.T) {
	m := newMapper()
	starts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("答复状态机", func(t *testing.T) {
		item := newItem(map[string]any{
			"Id":        rawID("ev-1"),
			"ItemClass": "IPM.Schedule.Meeting.Request",
			"Start":     starts,
			"End":       starts.Add(time.Hour),
			"Location":  "B-201",
			"Organizer": &ews.Mailbox{Name: "Jane Doe", Address: "jane@example.com"},
		})
		appointment := newItem(map[string]any{"MyResponseType": "Tentative"})

		ev := m.Event(item, appointment).(*domain.Event)
		assert.Contains(t, ev.Self, "/events/")
		assert.Equal(t, "tentative accepted", ev.Response)
		assert.Empty(t, ev.Action)
		assert.Equal(t, "B-201", ev.Location)
		require.NotNil(t, ev.Organizer)
		assert.Equal(t, "/users/jane", ev.Organizer.Ref)
	})

	t.Run("未知答复码小写透传", func(t *testing.T) {
		item := newItem(map[string]any{"Id": rawID("ev-2"), "ItemClass": "IPM.Schedule.Meeting.Request"})
		appointment := newItem(map[string]any{"MyResponseType": "Maybe"})
		ev := m.Event(item, appointment).(*domain.Event)
		assert.Equal(t, "maybe", ev.Response)
	})

	t.Run("答复邮件携带动作轴", func(t *testing.T) {
		item := newItem(map[string]any{
			"Id":           rawID("ev-3"),
			"ItemClass":    "IPM.Schedule.Meeting.Resp.Pos",
			"ResponseType": "Accept",
		})
		ev := m.Event(item, nil).(*domain.Event)
		assert.Equal(t, "accepted", ev.Action)
		assert.Empty(t, ev.Response)
	})

	t.Run("缺席日程视图时省略答复", func(t *testing.T) {
		item := newItem(map[string]any{"Id": rawID("ev-4"), "ItemClass": "IPM.Schedule.Meeting.Request"})
		ev := m.Event(item, nil).(*domain.Event)
		assert.Empty(t, ev.Response)
	})
}

func TestUser(t *testing.T) {
	m := newMapper()

	contact := newItem(map[string]any{
		"DisplayName": "Jane Doe",
		"GivenName":   "Jane",
		"Surname":     "Doe",
		"CompanyName": "Initech",
		"JobTitle":    "Engineer",
		"Department":  "Platform",
		"PhoneNumbers": map[string]string{
			"MobilePhone":   "555-0100",
			"BusinessPhone": "555-0101",
		},
		"PhysicalAddresses": map[string]*ews.PhysicalAddress{
			"Business": {Street: "1 Main St", City: "Springfield", PostalCode: "12345"},
		},
		"Manager":        "Big Boss",
		"ManagerMailbox": &ews.Mailbox{Address: "boss@example.com"},
		"DirectReports":  []*ews.Mailbox{{Name: "Report One"}, {Name: "Report Two"}},
		"Photo":          "aGVsbG8=",
	})
	res := &ews.Resolution{
		Mailbox: ews.Mailbox{Address: "jdoe@example.com"},
		Contact: contact,
	}

	u, ok := m.User(res).(*domain.User)
	require.True(t, ok)

	assert.Equal(t, "/users/jdoe", u.Self)
	assert.Equal(t, "Jane", u.Name.First)
	assert.Equal(t, "Jane Doe", u.Name.Full)
	assert.Equal(t, "jdoe@example.com", u.Email)
	assert.Equal(t, "555-0100", u.Phone)
	require.NotNil(t, u.Address)
	assert.Equal(t, "1 Main St", u.Address.Street)
	assert.Equal(t, "data:image/jpg;base64,aGVsbG8=", u.Photo)

	t.Run("上级只保留弱引用", func(t *testing.T) {
		require.NotNil(t, u.Manager)
		assert.Equal(t, "/users/big.boss", u.Manager.Ref)
		assert.Equal(t, "Big Boss", u.Manager.Name.Full)
		assert.Equal(t, "boss@example.com", u.Manager.Email)
	})

	t.Run("下属只保留链接", func(t *testing.T) {
		require.Len(t, u.Employees, 2)
		assert.Equal(t, "/users/report.one", u.Employees[0].Ref)
		assert.Empty(t, u.Employees[0].Name)
	})

	t.Run("缺少联系人详情降级为占位", func(t *testing.T) {
		stub, ok := m.User(&ews.Resolution{Mailbox: ews.Mailbox{Address: "x@example.com"}}).(*domain.ErrorStub)
		require.True(t, ok)
		assert.Equal(t, "#/error", stub.Self)
	})
}

func TestThread(t *testing.T) {
	m := newMapper()

	conv := &ews.Conversation{
		ID:               *rawID("conv-9"),
		Topic:            "release planning",
		UniqueSenders:    []string{"Jane Doe"},
		UniqueRecipients: []string{"Bob Smith"},
		UnreadCount:      2,
	}
	nodes := []*ews.ConversationNode{
		{Items: []*ews.Item{newItem(map[string]any{"Id": rawID("m-1"), "ItemClass": "IPM.Note"})}},
		{Items: nil},
		{Items: []*ews.Item{newItem(map[string]any{"Id": rawID("m-2"), "ItemClass": "IPM.Schedule.Meeting.Request"})}},
	}

	thread, ok := m.Thread(conv, nodes).(*domain.Thread)
	require.True(t, ok)

	assert.Contains(t, thread.Self, "/threads/")
	assert.Equal(t, "release planning", thread.Subject)
	assert.Equal(t, "normal", thread.Importance)
	assert.True(t, thread.Read)
	assert.False(t, thread.Updated.IsZero())
	require.Len(t, thread.Senders, 1)
	assert.Equal(t, "/users/jane.doe", thread.Senders[0].Ref)
	assert.Equal(t, "Jane Doe", thread.Senders[0].Name.Full)

	require.Len(t, thread.Messages, 3)
	assert.Contains(t, thread.Messages[0].(*domain.Reference).Ref, "/messages/")
	_, isStub := thread.Messages[1].(*domain.ErrorStub)
	assert.True(t, isStub, "空节点应降级为错误占位")
	assert.Contains(t, thread.Messages[2].(*domain.Reference).Ref, "/events/")
}

func TestAttachments(t *testing.T) {
	m := newMapper()
	item := newItem(map[string]any{
		"Id": rawID("msg-7"),
		"Attachments": []*ews.Attachment{
			{Name: "report.xlsx", ContentType: "application/vnd.ms-excel", Size: 2048, ContentID: "cid-1"},
		},
	})

	t.Run("描述符", func(t *testing.T) {
		atts := m.Attachments("abc123", "messages", item)
		require.Len(t, atts, 1)
		assert.Equal(t, "/messages/abc123/attachments/0", atts[0].Ref)
		assert.Equal(t, "report.xlsx", atts[0].Name)
		assert.Equal(t, "attachment", atts[0].Disposition)
	})

	t.Run("下标越界", func(t *testing.T) {
		_, ok := m.AttachmentAt("abc123", "messages", item, 5)
		assert.False(t, ok)
		_, ok = m.AttachmentAt("abc123", "messages", item, -1)
		assert.False(t, ok)
	})

	t.Run("没有附件返回空表", func(t *testing.T) {
		assert.Empty(t, m.Attachments("abc123", "messages", newItem(map[string]any{})))
	})
}
