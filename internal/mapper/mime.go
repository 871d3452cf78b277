package mapper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
)

// FindMIMEType 在原始 MIME 负载中深度优先查找指定类型的部件，
// 返回第一个命中部件的正文；整棵树都没有该类型时返回空串。
func FindMIMEType(raw []byte, mediaType string) (string, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return "", fmt.Errorf("解析 MIME 负载失败: %w", err)
	}
	return findPart(entity, mediaType), nil
}

// findPart 深度优先遍历：先探多部件的每个子部件，叶子部件再
// 比对自身类型。同类型的多个部件以遍历序第一个为准。
func findPart(entity *message.Entity, mediaType string) string {
	if mr := entity.MultipartReader(); mr != nil {
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				return ""
			}
			if err != nil && !message.IsUnknownCharset(err) {
				return ""
			}
			if body := findPart(part, mediaType); body != "" {
				return body
			}
		}
	}

	partType, _, err := entity.Header.ContentType()
	if err != nil || !strings.EqualFold(partType, mediaType) {
		return ""
	}
	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return ""
	}
	return string(body)
}
