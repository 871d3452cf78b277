package mapper

import (
	"fmt"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/extract"
)

// Attachments 把条目上的全部附件映射为描述符列表。
//
// 列表里只有元数据，内容由 (parentType, parentID, index) 按需
// 拉取，绝不在列表里内嵌字节。
func (m *Mapper) Attachments(parentID, parentType string, item *ews.Item) []domain.Attachment {
	raw := extract.AsAttachments(extract.Safely(item.Bag, "Attachments"))
	out := make([]domain.Attachment, 0, len(raw))
	for index, att := range raw {
		if att == nil {
			continue
		}
		out = append(out, attachmentDescriptor(parentID, parentType, index, att))
	}
	return out
}

// AttachmentAt 返回指定下标的附件描述符，越界时报 false。
func (m *Mapper) AttachmentAt(parentID, parentType string, item *ews.Item, index int) (domain.Attachment, bool) {
	raw := extract.AsAttachments(extract.Safely(item.Bag, "Attachments"))
	if index < 0 || index >= len(raw) || raw[index] == nil {
		return domain.Attachment{}, false
	}
	return attachmentDescriptor(parentID, parentType, index, raw[index]), true
}

func attachmentDescriptor(parentID, parentType string, index int, att *ews.Attachment) domain.Attachment {
	disposition := "attachment"
	if att.IsInline {
		disposition = "inline"
	}
	return domain.Attachment{
		Ref:         fmt.Sprintf("/%s/%s/attachments/%d", parentType, parentID, index),
		Type:        att.ContentType,
		Name:        att.Name,
		Size:        att.Size,
		ContentID:   att.ContentID,
		Disposition: disposition,
	}
}
