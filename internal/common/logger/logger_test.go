package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// ==========================
// New
// ==========================

func TestNew_LevelEnablement(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		infoEnabled  bool
		warnEnabled  bool
	}{
		{level: "debug", debugEnabled: true, infoEnabled: true, warnEnabled: true},
		{level: "info", debugEnabled: false, infoEnabled: true, warnEnabled: true},
		{level: "warn", debugEnabled: false, infoEnabled: false, warnEnabled: true},
		{level: "error", debugEnabled: false, infoEnabled: false, warnEnabled: false},
		{level: "verbose", debugEnabled: false, infoEnabled: true, warnEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(tt.level, "json", "stdout")
			require.NotNil(t, log)
			core := log.Core()
			assert.Equal(t, tt.debugEnabled, core.Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.infoEnabled, core.Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.warnEnabled, core.Enabled(zapcore.WarnLevel))
			assert.True(t, core.Enabled(zapcore.ErrorLevel))
		})
	}
}

func TestNew_OutputAndFormat(t *testing.T) {
	assert.NotNil(t, New("info", "json", "stderr"))
	assert.NotNil(t, New("debug", "console", ""))
}
