package mapper

import (
	"strings"

	"go.uber.org/zap"

	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/extract"
)

// email 构造邮件与日历条目共享的核心字段。
//
// 只有条目标识是必填项；其余字段缺失时逐项降级，发件人与
// 收件人按多个候选属性做有序后备。read 标志单独用安全读取
// 隔离，部分条目状态下读它会使底层对象失稳。
func (m *Mapper) email(item *ews.Item) *domain.Message {
	bag := item.Bag
	id := mustID(bag, "Id")
	kind := domain.ClassifyItem(extract.AsString(extract.Safely(bag, "ItemClass")))

	msg := &domain.Message{
		Self:       kind.TypePrefix() + mustEncode(id.UniqueID),
		Href:       extract.AsString(extract.Safely(bag, "WebClientReadFormQueryString")),
		Sender:     party(extract.AsMailbox(extract.FirstOf(bag, []string{"Sender", "From"}, nil))),
		Recipient:  party(extract.AsMailbox(extract.FirstOf(bag, []string{"ReceivedBy", "ReceivedRepresenting"}, nil))),
		Sent:       extract.AsTime(extract.Safely(bag, "DateTimeSent")),
		Created:    extract.AsTime(extract.Safely(bag, "DateTimeCreated")),
		Importance: lowerOr(extract.AsString(extract.Safely(bag, "Importance")), ""),
		Subject: domain.Subject{
			Original: extract.AsString(extract.Safely(bag, "ConversationTopic")),
			Current:  extract.AsString(extract.Safely(bag, "Subject")),
		},
		Size: extract.AsInt(extract.Safely(bag, "Size")),
	}

	if onBehalf := party(extract.AsMailbox(extract.FirstOf(bag, []string{"ReceivedRepresenting", "ReceivedBy"}, nil))); onBehalf != nil && msg.Recipient != nil {
		msg.Recipient.OnBehalf = onBehalf
	}

	if cid := extract.AsItemID(extract.Safely(bag, "ConversationId")); cid != nil {
		msg.Thread = &domain.Reference{Ref: "/threads/" + mustEncode(cid.UniqueID)}
	}

	if v := extract.Safely(bag, "IsRead"); v != nil {
		read := extract.AsBool(v)
		msg.Read = &read
	}
	return msg
}

// body 组装正文：HTML 取条目自带正文，纯文本优先从原始 MIME
// 负载中定位，定位不到时保持为空。
func (m *Mapper) body(bag *ews.PropertyBag) *domain.MessageBody {
	body := &domain.MessageBody{
		HTML: extract.AsString(extract.Safely(bag, "Body")),
	}
	if raw := extract.AsBytes(extract.Safely(bag, "MimeContent")); len(raw) > 0 {
		if text, err := FindMIMEType(raw, "text/plain"); err == nil {
			body.Text = text
		} else {
			m.logger.Debug("MIME 正文解析失败", zap.Error(err))
		}
	}
	return body
}

// MessageSummary 只映射核心字段，供列表场景使用：不含正文、
// 附件与收件人明细，避免为一页列表解析全部 MIME 负载。
func (m *Mapper) MessageSummary(item *ews.Item) any {
	return m.contain("message", func() any {
		return m.email(item)
	})
}

// Message 把原始邮件条目映射为 Message 实体。
func (m *Mapper) Message(item *ews.Item) any {
	return m.contain("message", func() any {
		bag := item.Bag
		msg := m.email(item)
		msg.Body = m.body(bag)
		msg.Attachments = m.Attachments(selfID(msg.Self), "messages", item)
		msg.Recipients = recipientList(extract.AsMailboxes(extract.Safely(bag, "ToRecipients")))
		return msg
	})
}

// Event 把原始日历条目映射为 Event 实体。appointment 是对应的
// 日程视图，可能缺席，此时答复状态整体省略。
func (m *Mapper) Event(item, appointment *ews.Item) any {
	return m.contain("event", func() any {
		bag := item.Bag
		ev := &domain.Event{Message: *m.email(item)}
		ev.Body = m.body(bag)
		ev.Recipients = recipientList(extract.AsMailboxes(extract.Safely(bag, "ToRecipients")))

		ev.Reminder = &domain.Reminder{
			Show: extract.AsBool(extract.Safely(bag, "ReminderIsSet")),
			When: domain.ReminderWhen{
				Minutes: extract.AsInt(extract.Safely(bag, "ReminderMinutesBeforeStart")),
				By:      extract.AsTime(extract.Safely(bag, "ReminderDueBy")),
			},
		}
		ev.Starts = extract.AsTime(extract.Safely(bag, "Start"))
		ev.Ends = extract.AsTime(extract.Safely(bag, "End"))
		ev.Location = extract.AsString(extract.Safely(bag, "Location"))
		ev.Recurring = extract.AsBool(extract.Safely(bag, "IsRecurring"))
		ev.Cancelled = extract.AsBool(extract.Safely(bag, "IsCancelled"))
		ev.Attendees = &domain.Attendees{
			Required: recipientList(extract.AsMailboxes(extract.Safely(bag, "RequiredAttendees"))),
			Optional: recipientList(extract.AsMailboxes(extract.Safely(bag, "OptionalAttendees"))),
		}
		if organizer := extract.AsMailbox(extract.Safely(bag, "Organizer")); organizer != nil && organizer.Name != "" {
			ev.Organizer = &domain.Reference{
				Ref:  codec.UserLink(organizer.Name, organizer.Address),
				Name: organizer.Name,
			}
		}

		if appointment != nil {
			if response := extract.AsString(extract.Safely(appointment.Bag, "MyResponseType")); response != "" {
				ev.Response = domain.MapResponseCode(strings.TrimSpace(response))
			}
		}

		// 会议答复邮件额外携带动作轴。
		itemClass := extract.AsString(extract.Safely(bag, "ItemClass"))
		if domain.ClassifyItem(itemClass) == domain.KindResponse {
			if action := extract.AsString(extract.Safely(bag, "ResponseType")); action != "" {
				ev.Action = domain.MapResponseCode(action)
			}
		}
		return ev
	})
}

// selfID 从自链接取出对外标识段。
func selfID(self string) string {
	if i := strings.LastIndexByte(self, '/'); i >= 0 {
		return self[i+1:]
	}
	return self
}
