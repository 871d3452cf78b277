package service

import "errors"

var (
	// ErrMessageNotFound 邮件不存在
	ErrMessageNotFound = errors.New("邮件不存在")
	// ErrThreadNotFound 会话不存在
	ErrThreadNotFound = errors.New("会话不存在")
	// ErrEventNotFound 日历条目不存在
	ErrEventNotFound = errors.New("日历条目不存在")
	// ErrUserNotFound 目录中找不到用户
	ErrUserNotFound = errors.New("目录中找不到用户")
	// ErrAttachmentNotFound 附件下标越界或不存在
	ErrAttachmentNotFound = errors.New("附件不存在")
	// ErrUnclearResponse 无法识别的会议答复
	ErrUnclearResponse = errors.New("无法识别的会议答复")
	// ErrEmptyQuery 目录检索需要关键字
	ErrEmptyQuery = errors.New("检索关键字不能为空")
	// ErrInvalidID 对外标识无法还原为提供商标识
	ErrInvalidID = errors.New("非法条目标识")
)
