package logger

import (
	"testing"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name           string
		logLvl         string
		logFormat      string
		expectedError  bool
		expectedLogLvl zapcore.Level
	}{
		{name: "Valid log level info", logLvl: "info", expectedLogLvl: zapcore.InfoLevel},
		{name: "Valid log level warn", logLvl: "warn", expectedLogLvl: zapcore.WarnLevel},
		{name: "Valid log level error", logLvl: "error", expectedLogLvl: zapcore.ErrorLevel},
		{name: "Valid log level debug", logLvl: "debug", expectedLogLvl: zapcore.DebugLevel},
		{name: "Json output", logLvl: "info", logFormat: "json", expectedLogLvl: zapcore.InfoLevel},
		{name: "Invalid log level", logLvl: "invalid", expectedError: true},
		{name: "Invalid log format", logLvl: "info", logFormat: "xml", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(&config.Config{LogLvl: tt.logLvl, LogFormat: tt.logFormat})

			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, zap.L().Core().Enabled(tt.expectedLogLvl))
			if tt.expectedLogLvl > zapcore.DebugLevel {
				require.False(t, zap.L().Core().Enabled(tt.expectedLogLvl-1))
			}
		})
	}
}
