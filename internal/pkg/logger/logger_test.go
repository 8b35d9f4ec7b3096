package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "info", Format: "json", Environment: "test", ServiceName: "parts-api"})

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithTaskID(ctx, "task-9")
	log.InfoContext(ctx, "import finished", slog.Int("created", 3))
	log.DebugContext(ctx, "filtered out")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)

	entry := lines[0]
	assert.Equal(t, "import finished", entry["msg"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "task-9", entry["task_id"])
	assert.Equal(t, "parts-api", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.EqualValues(t, 3, entry["created"])
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}

func TestSanitizationHandler(t *testing.T) {
	tests := []struct {
		name    string
		log     func(l *slog.Logger)
		key     string
		want    string
		message string
	}{
		{
			name: "sensitive_key",
			log:  func(l *slog.Logger) { l.Info("login", slog.String("jwt_secret", "abc")) },
			key:  "jwt_secret",
			want: redacted,
		},
		{
			name: "bearer_in_value",
			log:  func(l *slog.Logger) { l.Info("request", slog.String("header", "Bearer eyJhbGciOi.abc.def")) },
			key:  "header",
			want: "Bearer " + redacted,
		},
		{
			name: "dsn_password",
			log: func(l *slog.Logger) {
				l.Info("connecting", slog.String("dsn", "postgres://parts:hunter2@db:5432/parts"))
			},
			key:  "dsn",
			want: "postgres://parts:" + redacted + "@db:5432/parts",
		},
		{
			name:    "message_assignment",
			log:     func(l *slog.Logger) { l.Info("bad config password=hunter2") },
			message: "bad config password=" + redacted,
		},
		{
			name: "plain_values_untouched",
			log:  func(l *slog.Logger) { l.Info("row", slog.String("name", "Brake Pad")) },
			key:  "name",
			want: "Brake Pad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf, Options{Format: "json"}))

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			if tt.key != "" {
				assert.Equal(t, tt.want, lines[0][tt.key])
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, lines[0]["msg"])
			}
		})
	}
}

func TestSanitizationHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Format: "json"}).With(slog.String("password", "hunter2"))
	log.Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, redacted, lines[0]["password"])
}

func TestAsynqLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewAsynqLogger(New(&buf, Options{Level: "debug", Format: "json"}))

	l.Info("processing ", 2, " tasks")
	l.Warn("slow")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "processing 2 tasks", lines[0]["msg"])
	assert.Equal(t, "asynq", lines[0]["component"])
	assert.Equal(t, "WARN", lines[1]["severity"])
}
