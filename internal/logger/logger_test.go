package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/island/internal/config"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "island.log")

	// 1MB is the smallest size lumberjack accepts.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	require.NoError(t, InitWithFileConfig("debug", cfg, false))
	defer Sync()

	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, longMessage)
	}
	Sync()

	_, err := os.Stat(logFile)
	require.NoError(t, err, "main log file should exist")

	files, err := os.ReadDir(tempDir)
	require.NoError(t, err)

	var rotated []string
	for _, f := range files {
		name := f.Name()
		if name != "island.log" && strings.HasPrefix(name, "island") && strings.Contains(name, ".log") {
			rotated = append(rotated, name)
		}
	}

	require.NotEmpty(t, rotated, "expected at least one rotated file")
	for _, name := range rotated {
		// island-YYYY-MM-DDTHH-MM-SS.SSS.log
		assert.Contains(t, name, "-20", "rotated file %s should carry a timestamp", name)
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
		{level: "bogus", expected: []string{"INFO"}, excluded: []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false)
			require.NoError(t, err)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)

			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	require.NoError(t, InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 10}, false))

	Named("water").Info("targets ready")
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "water")
	assert.Contains(t, string(content), "targets ready")
}

func TestFileConfigFrom(t *testing.T) {
	cfg := config.Default().Logging
	cfg.LogFile = "/tmp/island.log"

	fc := FileConfigFrom(cfg)
	assert.Equal(t, "/tmp/island.log", fc.Path)
	assert.Equal(t, 50, fc.MaxSizeMB)
	assert.Equal(t, 3, fc.MaxBackups)
	assert.Equal(t, 7, fc.MaxAgeDays)
	assert.True(t, fc.Compress)
}

func TestLoggingBeforeInit(t *testing.T) {
	// The zero state must not panic.
	assert.NotPanics(t, func() {
		Info("before init")
		Sync()
	})
}
