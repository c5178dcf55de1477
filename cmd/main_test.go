package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxevent"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

func withLevel(level string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = level

	return cfg
}

func Test_LoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, config.MaxWorkers, cfg.Concurrency.Workers)
	assert.Equal(t, config.WatchDebounce, cfg.Watch.Debounce)
}

func Test_CreateApp(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
	}{
		{name: "Creates app with info level logging", config: withLevel(logger.InfoLevel)},
		{name: "Creates app with debug level logging", config: withLevel(logger.DebugLevel)},
		{name: "Creates app with error level logging", config: withLevel(logger.ErrorLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := createApp(tt.config)

			assert.NotNil(t, app)
			assert.NoError(t, app.Err())
		})
	}
}

func Test_CreateFxLogger(t *testing.T) {
	tests := []struct {
		name           string
		config         *config.Config
		expectedType   interface{}
		expectedLogger interface{}
	}{
		{
			name:         "Debug level returns console logger",
			config:       withLevel(logger.DebugLevel),
			expectedType: &fxevent.ConsoleLogger{},
		},
		{
			name:           "Info level returns nop logger",
			config:         withLevel(logger.InfoLevel),
			expectedLogger: fxevent.NopLogger,
		},
		{
			name:           "Warn level returns nop logger",
			config:         withLevel(logger.WarnLevel),
			expectedLogger: fxevent.NopLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loggerFunc := createFxLogger(tt.config)
			assert.NotNil(t, loggerFunc)

			result := loggerFunc()
			assert.NotNil(t, result)

			if tt.expectedType != nil {
				assert.IsType(t, tt.expectedType, result)
			}

			if tt.expectedLogger != nil {
				assert.Equal(t, tt.expectedLogger, result)
			}
		})
	}
}
