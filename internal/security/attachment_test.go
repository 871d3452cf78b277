package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentPolicy(t *testing.T) {
	policy := NewAttachmentPolicy()

	t.Run("危险扩展名", func(t *testing.T) {
		assert.True(t, policy.IsDangerous("payload.exe", nil))
		assert.True(t, policy.IsDangerous("Invoice.JS", nil))
		assert.False(t, policy.IsDangerous("report.pdf", []byte("%PDF-1.7")))
	})

	t.Run("可执行文件魔数", func(t *testing.T) {
		assert.True(t, policy.IsDangerous("innocent.dat", []byte{0x4D, 0x5A, 0x90, 0x00}))
		assert.True(t, policy.IsDangerous("innocent.dat", []byte{0x7F, 'E', 'L', 'F'}))
		assert.False(t, policy.IsDangerous("photo.png", []byte{0x89, 'P', 'N', 'G'}))
	})

	t.Run("内容类型降级", func(t *testing.T) {
		assert.Equal(t, "application/octet-stream", policy.SafeContentType("text/html", "page.html", nil))
		assert.Equal(t, "application/octet-stream", policy.SafeContentType("image/svg+xml", "logo.svg", nil))
		assert.Equal(t, "application/octet-stream", policy.SafeContentType("application/pdf", "tool.exe", nil))
		assert.Equal(t, "application/octet-stream", policy.SafeContentType("", "unknown.bin", nil))
		assert.Equal(t, "application/pdf", policy.SafeContentType("application/pdf", "report.pdf", nil))
	})
}
