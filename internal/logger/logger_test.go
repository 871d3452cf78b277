package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromApp(t *testing.T) {
	t.Run("默认只写标准输出", func(t *testing.T) {
		log, err := FromApp("info", false, "")
		require.NoError(t, err)
		log.Info("hello")
		_ = log.Sync()
	})

	t.Run("指定文件时写入轮转日志", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "server.log")
		log, err := FromApp("info", false, logFile)
		require.NoError(t, err)

		log.Info("hello")
		_ = log.Sync()

		info, err := os.Stat(logFile)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("非法级别回退为 info", func(t *testing.T) {
		log, err := FromApp("not-a-level", true, "")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}
