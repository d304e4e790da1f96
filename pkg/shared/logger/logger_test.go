package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/html-checker/pkg/shared/config"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name     string
		cfgLevel string
		envLevel string
		want     hclog.Level
	}{
		{name: "config wins", cfgLevel: "debug", envLevel: "ERROR", want: hclog.Debug},
		{name: "env fallback", envLevel: "warn", want: hclog.Warn},
		{name: "default", want: hclog.Info},
		{name: "unknown", cfgLevel: "chatty", want: hclog.Info},
		{name: "off", cfgLevel: "OFF", want: hclog.Off},
		{name: "padded mixed case", cfgLevel: " Warn ", want: hclog.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HTML_CHECKER_LOG_LEVEL", tt.envLevel)
			cfg := &config.Config{Logger: config.Logger{Level: tt.cfgLevel}}
			assert.Equal(t, tt.want, NewLogger(cfg, "test").GetLevel())
		})
	}
}

func TestNewLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	t.Cleanup(func() { Output = prev })

	l := NewLogger(nil, "html-checker")
	l.Info("validation finished", "findings", 2)

	assert.Equal(t, "[INFO]  html-checker: validation finished: findings=2\n", buf.String())
}
