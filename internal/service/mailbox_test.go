package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/mapper"
)

// fakeSession 以函数字段桩出需要的会话行为，未桩方法一律报错。
type fakeSession struct {
	bindItem             func(id ews.ItemID, props ews.PropertySet) (*ews.Item, error)
	bindAppointment      func(id ews.ItemID) (*ews.Item, error)
	findItems            func(folder ews.WellKnownFolder, view ews.PagedView, query string) ([]*ews.Item, error)
	findCalendarItems    func(view ews.CalendarView) ([]*ews.Item, error)
	resolveNames         func(query string) ([]*ews.Resolution, error)
	findConversations    func(folder ews.WellKnownFolder, view ews.PagedView, query string) ([]*ews.Conversation, error)
	getConversationItems func(ids []ews.ItemID) ([]*ews.ConversationItems, error)
	deleteItems          func(ids []ews.ItemID) error
	reply                func(id ews.ItemID, body string, replyAll bool) error
	respondToMeeting     func(id ews.ItemID, response ews.MeetingResponse) error
	loadAttachment       func(id ews.ItemID, index int) (*ews.Attachment, error)
}

var errNotStubbed = errors.New("not stubbed")

func (f *fakeSession) BindItem(_ context.Context, id ews.ItemID, props ews.PropertySet) (*ews.Item, error) {
	if f.bindItem == nil {
		return nil, errNotStubbed
	}
	return f.bindItem(id, props)
}

func (f *fakeSession) BindAppointment(_ context.Context, id ews.ItemID) (*ews.Item, error) {
	if f.bindAppointment == nil {
		return nil, errNotStubbed
	}
	return f.bindAppointment(id)
}

func (f *fakeSession) FindItems(_ context.Context, folder ews.WellKnownFolder, view ews.PagedView, query string, _ ews.PropertySet) ([]*ews.Item, error) {
	if f.findItems == nil {
		return nil, errNotStubbed
	}
	return f.findItems(folder, view, query)
}

func (f *fakeSession) FindCalendarItems(_ context.Context, view ews.CalendarView, _ ews.PropertySet) ([]*ews.Item, error) {
	if f.findCalendarItems == nil {
		return nil, errNotStubbed
	}
	return f.findCalendarItems(view)
}

func (f *fakeSession) ResolveNames(_ context.Context, query string, _ bool) ([]*ews.Resolution, error) {
	if f.resolveNames == nil {
		return nil, errNotStubbed
	}
	return f.resolveNames(query)
}

func (f *fakeSession) FindConversations(_ context.Context, folder ews.WellKnownFolder, view ews.PagedView, query string) ([]*ews.Conversation, error) {
	if f.findConversations == nil {
		return nil, errNotStubbed
	}
	return f.findConversations(folder, view, query)
}

func (f *fakeSession) GetConversationItems(_ context.Context, ids []ews.ItemID) ([]*ews.ConversationItems, error) {
	if f.getConversationItems == nil {
		return nil, errNotStubbed
	}
	return f.getConversationItems(ids)
}

func (f *fakeSession) DeleteItems(_ context.Context, ids []ews.ItemID) error {
	if f.deleteItems == nil {
		return errNotStubbed
	}
	return f.deleteItems(ids)
}

func (f *fakeSession) Reply(_ context.Context, id ews.ItemID, body string, replyAll bool) error {
	if f.reply == nil {
		return errNotStubbed
	}
	return f.reply(id, body, replyAll)
}

func (f *fakeSession) RespondToMeeting(_ context.Context, id ews.ItemID, response ews.MeetingResponse) error {
	if f.respondToMeeting == nil {
		return errNotStubbed
	}
	return f.respondToMeeting(id, response)
}

func (f *fakeSession) LoadAttachment(_ context.Context, id ews.ItemID, index int) (*ews.Attachment, error) {
	if f.loadAttachment == nil {
		return nil, errNotStubbed
	}
	return f.loadAttachment(id, index)
}

func (f *fakeSession) Close() error { return nil }

func newTestMailbox() *Mailbox {
	return NewMailbox(mapper.New(zap.NewNop(), nil), zap.NewNop(), nil)
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

func externalOf(s string) string {
	external, _ := codec.EncodeID(rawID(s).UniqueID)
	return external
}

func TestListMessages(t *testing.T) {
	svc := newTestMailbox()
	sess := &fakeSession{
		findItems: func(folder ews.WellKnownFolder, _ ews.PagedView, query string) ([]*ews.Item, error) {
			assert.Equal(t, ews.FolderInbox, folder)
			assert.Empty(t, query)
			return []*ews.Item{
				newItem(map[string]any{"Id": rawID("m-1"), "Subject": "one"}),
				newItem(map[string]any{"Subject": "broken"}),
			}, nil
		},
	}

	out, err := svc.ListMessages(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, out, 2)
	_, ok := out[0].(*domain.Message)
	assert.True(t, ok)
	_, isStub := out[1].(*domain.ErrorStub)
	assert.True(t, isStub)
}

func TestGetMessage(t *testing.T) {
	svc := newTestMailbox()

	t.Run("非法标识", func(t *testing.T) {
		_, err := svc.GetMessage(context.Background(), &fakeSession{}, "zz-not-hex")
		assert.Error(t, err)
	})

	t.Run("提供商未找到", func(t *testing.T) {
		sess := &fakeSession{
			bindItem: func(ews.ItemID, ews.PropertySet) (*ews.Item, error) {
				return nil, errors.New("404")
			},
		}
		_, err := svc.GetMessage(context.Background(), sess, externalOf("m-x"))
		assert.ErrorIs(t, err, ErrMessageNotFound)
	})
}

func TestListThreads(t *testing.T) {
	svc := newTestMailbox()

	convA := &ews.Conversation{ID: *rawID("conv-a"), Topic: "a"}
	convB := &ews.Conversation{ID: *rawID("conv-b"), Topic: "b"}
	nodeFor := func(msg string) []*ews.ConversationNode {
		return []*ews.ConversationNode{
			{Items: []*ews.Item{newItem(map[string]any{"Id": rawID(msg), "ItemClass": "IPM.Note"})}},
		}
	}

	t.Run("零命中降级为占位且不失败整页", func(t *testing.T) {
		sess := &fakeSession{
			findConversations: func(folder ews.WellKnownFolder, view ews.PagedView, query string) ([]*ews.Conversation, error) {
				assert.Equal(t, ews.FolderInbox, folder)
				return []*ews.Conversation{convA, convB}, nil
			},
			getConversationItems: func(ids []ews.ItemID) ([]*ews.ConversationItems, error) {
				assert.Len(t, ids, 2)
				// 只有 conv-a 有批次。
				return []*ews.ConversationItems{
					{ConversationID: convA.ID, Nodes: nodeFor("m-a")},
				}, nil
			},
		}
		out, err := svc.ListThreads(context.Background(), sess, 0, 10, "")
		require.NoError(t, err)
		require.Len(t, out, 2)
		_, ok := out[0].(*domain.Thread)
		assert.True(t, ok)
		stub, ok := out[1].(*domain.ErrorStub)
		require.True(t, ok)
		assert.Equal(t, "#/error", stub.Self)
	})

	t.Run("多命中取第一个", func(t *testing.T) {
		sess := &fakeSession{
			findConversations: func(ews.WellKnownFolder, ews.PagedView, string) ([]*ews.Conversation, error) {
				return []*ews.Conversation{convA}, nil
			},
			getConversationItems: func([]ews.ItemID) ([]*ews.ConversationItems, error) {
				return []*ews.ConversationItems{
					{ConversationID: convA.ID, Nodes: nodeFor("m-first")},
					{ConversationID: convA.ID, Nodes: nodeFor("m-second")},
				}, nil
			},
		}
		out, err := svc.ListThreads(context.Background(), sess, 0, 10, "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		thread := out[0].(*domain.Thread)
		require.Len(t, thread.Messages, 1)
		wantRef := "/messages/" + externalOf("m-first")
		assert.Equal(t, wantRef, thread.Messages[0].(*domain.Reference).Ref)
	})

	t.Run("关键字检索走根目录深度过滤", func(t *testing.T) {
		sess := &fakeSession{
			findConversations: func(folder ews.WellKnownFolder, _ ews.PagedView, query string) ([]*ews.Conversation, error) {
				assert.Equal(t, ews.FolderRoot, folder)
				assert.Equal(t, `subject:"quarterly"`, query)
				return nil, nil
			},
		}
		out, err := svc.ListThreads(context.Background(), sess, 0, 10, "quarterly")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestDeleteThread(t *testing.T) {
	svc := newTestMailbox()

	t.Run("删除会话全部条目", func(t *testing.T) {
		var deleted []ews.ItemID
		sess := &fakeSession{
			getConversationItems: func(ids []ews.ItemID) ([]*ews.ConversationItems, error) {
				return []*ews.ConversationItems{{
					ConversationID: ids[0],
					Nodes: []*ews.ConversationNode{
						{Items: []*ews.Item{newItem(map[string]any{"Id": rawID("m-1")})}},
						{Items: []*ews.Item{newItem(map[string]any{"Id": rawID("m-2")})}},
					},
				}}, nil
			},
			deleteItems: func(ids []ews.ItemID) error {
				deleted = ids
				return nil
			},
		}
		err := svc.DeleteThread(context.Background(), sess, externalOf("conv-1"))
		require.NoError(t, err)
		assert.Len(t, deleted, 2)
	})

	t.Run("会话不存在", func(t *testing.T) {
		sess := &fakeSession{
			getConversationItems: func([]ews.ItemID) ([]*ews.ConversationItems, error) {
				return nil, nil
			},
		}
		err := svc.DeleteThread(context.Background(), sess, externalOf("conv-x"))
		assert.ErrorIs(t, err, ErrThreadNotFound)
	})

	t.Run("删除失败原样上抛", func(t *testing.T) {
		providerErr := errors.New("provider rejected")
		sess := &fakeSession{
			getConversationItems: func(ids []ews.ItemID) ([]*ews.ConversationItems, error) {
				return []*ews.ConversationItems{{
					ConversationID: ids[0],
					Nodes: []*ews.ConversationNode{
						{Items: []*ews.Item{newItem(map[string]any{"Id": rawID("m-1")})}},
					},
				}}, nil
			},
			deleteItems: func([]ews.ItemID) error { return providerErr },
		}
		err := svc.DeleteThread(context.Background(), sess, externalOf("conv-1"))
		assert.ErrorIs(t, err, providerErr)
	})
}

func TestAttachmentContent(t *testing.T) {
	svc := newTestMailbox()
	item := newItem(map[string]any{
		"Id": rawID("m-1"),
		"Attachments": []*ews.Attachment{
			{Name: "a.txt", ContentType: "text/plain", Size: 5},
		},
	})
	sess := &fakeSession{
		bindItem: func(ews.ItemID, ews.PropertySet) (*ews.Item, error) { return item, nil },
		loadAttachment: func(_ ews.ItemID, index int) (*ews.Attachment, error) {
			return &ews.Attachment{Name: "a.txt", ContentType: "text/plain", Content: []byte("hello")}, nil
		},
	}

	t.Run("按需拉取内容", func(t *testing.T) {
		content, err := svc.GetAttachmentContent(context.Background(), sess, externalOf("m-1"), "messages", 0)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), content.Data)
		assert.Equal(t, "text/plain", content.Mime)
	})

	t.Run("下标越界", func(t *testing.T) {
		_, err := svc.GetAttachmentContent(context.Background(), sess, externalOf("m-1"), "messages", 3)
		assert.ErrorIs(t, err, ErrAttachmentNotFound)
	})
}

func TestRespondEvent(t *testing.T) {
	svc := newTestMailbox()

	t.Run("答复并返回更新后的实体", func(t *testing.T) {
		var responded ews.MeetingResponse
		sess := &fakeSession{
			bindItem: func(ews.ItemID, ews.PropertySet) (*ews.Item, error) {
				return newItem(map[string]any{
					"Id":        rawID("ev-1"),
					"ItemClass": "IPM.Schedule.Meeting.Request",
				}), nil
			},
			respondToMeeting: func(_ ews.ItemID, response ews.MeetingResponse) error {
				responded = response
				return nil
			},
		}
		out, err := svc.RespondEvent(context.Background(), sess, externalOf("ev-1"), "tentative")
		require.NoError(t, err)
		assert.Equal(t, ews.RespondTentative, responded)
		ev := out.(*domain.Event)
		assert.Equal(t, "tentative accepted", ev.Response)
	})

	t.Run("无法识别的答复", func(t *testing.T) {
		_, err := svc.RespondEvent(context.Background(), &fakeSession{}, externalOf("ev-1"), "whatever")
		assert.ErrorIs(t, err, ErrUnclearResponse)
	})

	t.Run("提供商拒绝原样上抛", func(t *testing.T) {
		providerErr := errors.New("meeting in the past")
		sess := &fakeSession{
			bindItem: func(ews.ItemID, ews.PropertySet) (*ews.Item, error) {
				return newItem(map[string]any{"Id": rawID("ev-1")}), nil
			},
			respondToMeeting: func(ews.ItemID, ews.MeetingResponse) error { return providerErr },
		}
		_, err := svc.RespondEvent(context.Background(), sess, externalOf("ev-1"), "accept")
		assert.ErrorIs(t, err, providerErr)
	})
}

func TestSearchUsers(t *testing.T) {
	svc := newTestMailbox()

	t.Run("空关键字拒绝", func(t *testing.T) {
		_, err := svc.SearchUsers(context.Background(), &fakeSession{}, "")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("逐个映射", func(t *testing.T) {
		sess := &fakeSession{
			resolveNames: func(query string) ([]*ews.Resolution, error) {
				assert.Equal(t, "jane", query)
				return []*ews.Resolution{
					{
						Mailbox: ews.Mailbox{Address: "jane@example.com"},
						Contact: newItem(map[string]any{"DisplayName": "Jane Doe"}),
					},
					{Mailbox: ews.Mailbox{Address: "nameless@example.com"}},
				}, nil
			},
		}
		out, err := svc.SearchUsers(context.Background(), sess, "jane")
		require.NoError(t, err)
		require.Len(t, out, 2)
		_, ok := out[0].(*domain.User)
		assert.True(t, ok)
		_, isStub := out[1].(*domain.ErrorStub)
		assert.True(t, isStub, "缺少详情的命中降级为占位")
	})
}
