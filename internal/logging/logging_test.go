package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestFieldsCarryRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, "debug")

	ctx := ContextWithRequestID(context.Background(), "rid-42")
	logger.InfoContext(ctx, "hello", Fields(ctx, slog.Int("count", 3))...)

	out := buf.String()
	if !strings.Contains(out, "request_id=rid-42") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected log output: %s", out)
	}

	if fields := Fields(context.Background()); len(fields) != 0 {
		t.Fatalf("expected no fields without request id, got %v", fields)
	}
}
