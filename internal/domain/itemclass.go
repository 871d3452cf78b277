package domain

import "strings"

// ItemKind 表示条目类别分类结果。
type ItemKind int

const (
	// KindMessage 普通邮件
	KindMessage ItemKind = iota
	// KindEvent 日历条目（会议请求、取消等）
	KindEvent
	// KindResponse 会议答复邮件
	KindResponse
)

// ClassifyItem 根据提供商的条目类别字符串归类。
//
// 包含 "Meeting" 的类别视为日历条目；其中再包含 "Resp" 的
// 视为会议答复。其余一律按普通邮件处理。
func ClassifyItem(itemClass string) ItemKind {
	if !strings.Contains(itemClass, "Meeting") {
		return KindMessage
	}
	if strings.Contains(itemClass, "Resp") {
		return KindResponse
	}
	return KindEvent
}

// TypePrefix 返回该类别实体在链接空间中的路径前缀。
func (k ItemKind) TypePrefix() string {
	if k == KindMessage {
		return "/messages/"
	}
	return "/events/"
}

// MapResponseCode 把提供商的会议答复码翻译为展示用语。
//
// 已知的三种答复映射为固定短语，其余值原样小写透传。
func MapResponseCode(code string) string {
	switch strings.ToLower(code) {
	case "accept":
		return "accepted"
	case "decline":
		return "declined"
	case "tentative":
		return "tentative accepted"
	default:
		return strings.ToLower(code)
	}
}
