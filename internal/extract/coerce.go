package extract

import (
	"time"

	"mailgate/backend/internal/ews"
)

// AsString 把任意值收敛为字符串，不匹配时返回空串。
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsBool 把任意值收敛为布尔，不匹配时返回 false。
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// AsInt 把任意值收敛为整数，不匹配时返回 0。
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// AsTime 把任意值收敛为时间指针，不匹配时返回 nil。
func AsTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		return t
	}
	return nil
}

// AsMailbox 把任意值收敛为邮箱参与方，不匹配时返回 nil。
func AsMailbox(v any) *ews.Mailbox {
	mb, _ := v.(*ews.Mailbox)
	return mb
}

// AsMailboxes 把任意值收敛为参与方序列，不匹配时返回 nil。
func AsMailboxes(v any) []*ews.Mailbox {
	mbs, _ := v.([]*ews.Mailbox)
	return mbs
}

// AsItemID 把任意值收敛为条目标识，不匹配时返回 nil。
func AsItemID(v any) *ews.ItemID {
	id, _ := v.(*ews.ItemID)
	return id
}

// AsBytes 把任意值收敛为字节串，不匹配时返回 nil。
func AsBytes(v any) []byte {
	b, _ := v.([]byte)
	return b
}

// AsAttachments 把任意值收敛为附件序列，不匹配时返回 nil。
func AsAttachments(v any) []*ews.Attachment {
	atts, _ := v.([]*ews.Attachment)
	return atts
}
