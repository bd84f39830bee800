package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" info ", slog.LevelInfo},
		{"-4", slog.LevelDebug},
		{"8", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseSlogLevel(tc.input, slog.LevelInfo), "input %q", tc.input)
	}
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, defaultReportsDir, viper.GetString(outputFlagName))
	assert.Equal(t, defaultScanParallel, viper.GetInt(scanParallelConfigKey))
	assert.Equal(t, defaultNoSave, viper.GetBool(noSaveConfigKey))
	assert.Equal(t, defaultLogFilename, viper.GetString(logFilenameKey))
}
