package bridge

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mailgate/backend/internal/ews"
)

// decodeItems 批量还原线上条目。
func decodeItems(in []*wireItem) ([]*ews.Item, error) {
	items := make([]*ews.Item, 0, len(in))
	for _, w := range in {
		item, err := decodeItem(w)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeItem 把线上 JSON 条目还原为属性包：已知属性名按类型
// 解码，其余属性保持通用 JSON 值；故障态属性原样落入属性包的
// 故障表。
func decodeItem(w *wireItem) (*ews.Item, error) {
	if w == nil {
		return nil, errors.New("桥接服务未返回条目")
	}
	bag := ews.NewPropertyBag()
	for name, raw := range w.Properties {
		v, err := decodeProperty(name, raw)
		if err != nil {
			return nil, fmt.Errorf("解码属性 %s 失败: %w", name, err)
		}
		bag.Set(name, v)
	}
	for name, msg := range w.Faults {
		bag.SetFault(name, errors.New(msg))
	}
	return &ews.Item{Bag: bag}, nil
}

func decodeProperty(name string, raw json.RawMessage) (any, error) {
	switch name {
	case "Id", "ConversationId":
		var id ews.ItemID
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		return &id, nil

	case "Sender", "From", "ReceivedBy", "ReceivedRepresenting", "Organizer", "ManagerMailbox":
		var mb ews.Mailbox
		if err := json.Unmarshal(raw, &mb); err != nil {
			return nil, err
		}
		return &mb, nil

	case "ToRecipients", "CcRecipients", "RequiredAttendees", "OptionalAttendees", "DirectReports":
		var mbs []*ews.Mailbox
		if err := json.Unmarshal(raw, &mbs); err != nil {
			return nil, err
		}
		return mbs, nil

	case "DateTimeSent", "DateTimeCreated", "Start", "End", "ReminderDueBy":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		return t, nil

	case "Attachments":
		var atts []*ews.Attachment
		if err := json.Unmarshal(raw, &atts); err != nil {
			return nil, err
		}
		return atts, nil

	case "CompleteName":
		var cn ews.CompleteName
		if err := json.Unmarshal(raw, &cn); err != nil {
			return nil, err
		}
		return &cn, nil

	case "PhysicalAddresses":
		var addrs map[string]*ews.PhysicalAddress
		if err := json.Unmarshal(raw, &addrs); err != nil {
			return nil, err
		}
		return addrs, nil

	case "PhoneNumbers", "EmailAddresses":
		var entries map[string]string
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, err
		}
		return entries, nil

	case "MimeContent":
		// 桥接服务传 base64 文本，这里直接还原成字节。
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return base64.StdEncoding.DecodeString(s)

	default:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		// JSON 数字统一还原为 int，属性包里不出现 float64 整数。
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			return int(f), nil
		}
		return v, nil
	}
}
