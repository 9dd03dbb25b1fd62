package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONLevels(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
	}{
		{env: EnvDev, wantDebug: true},
		{env: EnvProd, wantDebug: false},
		{env: "", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.env, &buf)

			log.Debug("debug line")
			log.Info("info line", slog.String("component", "orders"))

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			if tt.wantDebug {
				require.Len(t, lines, 2)
			} else {
				require.Len(t, lines, 1)
			}

			var record map[string]any
			require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))
			assert.Equal(t, "info line", record["msg"])
			assert.Equal(t, "orders", record["component"])
		})
	}
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := New(EnvLocal, &buf).
		With("component", "relay").
		WithGroup("batch")

	log.Warn("publish failed", slog.Int("size", 3), slog.Any("error", errors.New("broker down")))

	out := buf.String()
	assert.Contains(t, out, "WARN: publish failed")
	assert.Contains(t, out, `"component":"relay"`)
	assert.Contains(t, out, `"batch.size":3`)
	assert.Contains(t, out, `"batch.error":"broker down"`)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
