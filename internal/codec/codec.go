// Package codec 负责提供商原生标识与对外 URL 标识之间的转换。
//
// 提供商的条目标识是 base64 文本，含有 '/' 等不适合直接出现在
// 路径中的字符；对外统一转码为小写十六进制，两个方向互为逆运算。
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeID 把提供商原生标识（base64）转码为对外标识（小写十六进制）。
func EncodeID(native string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(native)
	if err != nil {
		return "", fmt.Errorf("解析原生标识失败: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// DecodeID 把对外标识（十六进制）还原为提供商原生标识（base64）。
func DecodeID(external string) (string, error) {
	raw, err := hex.DecodeString(external)
	if err != nil {
		return "", fmt.Errorf("解析对外标识失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// UserLink 根据显示名和邮箱地址生成用户自链接。
//
// 显示名为空时无法定位用户，返回空串。给定邮箱时若其本地部分
// 与显示名不一致，以本地部分为准。
func UserLink(name, email string) string {
	if name == "" {
		return ""
	}
	proposed := slugify(name)
	if email == "" {
		return "/users/" + proposed
	}
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	local = strings.ToLower(local)
	if local != name {
		return "/users/" + local
	}
	return "/users/" + name
}

// slugify 把显示名压成链接安全的片段：
// 小写、去掉尾部的 @域名、空格换成点、其余非字母数字字符丢弃。
func slugify(name string) string {
	s := strings.ToLower(name)
	if at := strings.LastIndexByte(s, '@'); at >= 0 && domainLike(s[at+1:]) {
		s = s[:at]
	}
	s = strings.ReplaceAll(s, " ", ".")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '.' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// domainLike 判断字符串是否形如邮箱域名（字母数字与点）。
func domainLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
