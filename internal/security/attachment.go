// Package security 对外发的附件内容做下载安全处理。
package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

// AttachmentPolicy 附件下载安全策略。
//
// 网关不拦截附件，只在危险内容上强制中性的内容类型，防止
// 浏览器内联执行。
type AttachmentPolicy struct {
	dangerousExtensions map[string]bool
}

// NewAttachmentPolicy 创建附件策略。
func NewAttachmentPolicy() *AttachmentPolicy {
	return &AttachmentPolicy{
		dangerousExtensions: map[string]bool{
			".exe": true,
			".bat": true,
			".cmd": true,
			".scr": true,
			".pif": true,
			".com": true,
			".vbs": true,
			".js":  true,
			".jar": true,
			".php": true,
			".asp": true,
			".jsp": true,
		},
	}
}

// executableSignatures 常见可执行文件魔数。
var executableSignatures = [][]byte{
	{0x4D, 0x5A},             // PE executable
	{0x7F, 0x45, 0x4C, 0x46}, // ELF executable
	{0xFE, 0xED, 0xFA, 0xCE}, // Mach-O executable
	{0xCE, 0xFA, 0xED, 0xFE}, // Mach-O executable (reverse)
}

// IsDangerous 报告附件是否按扩展名或魔数判定为危险内容。
func (p *AttachmentPolicy) IsDangerous(name string, content []byte) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if p.dangerousExtensions[ext] {
		return true
	}
	for _, sig := range executableSignatures {
		if bytes.HasPrefix(content, sig) {
			return true
		}
	}
	return false
}

// SafeContentType 返回对外发送时应使用的内容类型。危险内容
// 和 HTML 一律降级为中性二进制流。
func (p *AttachmentPolicy) SafeContentType(mime, name string, content []byte) string {
	if p.IsDangerous(name, content) {
		return "application/octet-stream"
	}
	lowered := strings.ToLower(mime)
	if strings.HasPrefix(lowered, "text/html") || strings.Contains(lowered, "svg") {
		return "application/octet-stream"
	}
	if mime == "" {
		return "application/octet-stream"
	}
	return mime
}
