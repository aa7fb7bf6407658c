package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"faceauth/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSONWithServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Level: "info"}, "faceauth")
	require.NoError(t, err)

	logger.Info("hello", slog.String("email", "a@x.com"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "faceauth", line["service"])
	assert.Equal(t, "a@x.com", line["email"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Level: "warn", Pretty: true}, "")
	require.NoError(t, err)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Level: "debug"}, "")
	require.NoError(t, err)

	logger.Debug("login", slog.String("password", "hunter2"), slog.String("Token", "eyJ"), slog.Int("user_id", 7))

	assert.NotContains(t, buf.String(), "hunter2")
	assert.NotContains(t, buf.String(), "eyJ")
	assert.Contains(t, buf.String(), `"password":"[REDACTED]"`)
	assert.Contains(t, buf.String(), `"user_id":7`)
}
