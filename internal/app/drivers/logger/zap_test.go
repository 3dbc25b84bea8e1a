package logger

import (
	"testing"

	"patient-intake-service/internal/app/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, parseLevel(" warn "))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
}

func TestBuildZapConfigOutputs(t *testing.T) {
	driverConfig := &config.DriverConfig{Logger: config.Logger{
		Level:               "debug",
		OutputFileName:      "app.log",
		OutputErrorFileName: "app_error.log",
	}}

	development := buildZapConfig(driverConfig, &config.InternalConfig{App: config.App{Env: "development"}})
	assert.Equal(t, []string{"stdout"}, development.OutputPaths)
	assert.True(t, development.Development)

	production := buildZapConfig(driverConfig, &config.InternalConfig{App: config.App{Env: "production"}})
	assert.Equal(t, []string{"app.log"}, production.OutputPaths)
	assert.Equal(t, []string{"stderr", "app_error.log"}, production.ErrorOutputPaths)
	assert.False(t, production.Development)
}
