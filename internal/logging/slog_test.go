package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTextLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTextLogger(t)

	log.With("module", "web", "request_id", "r-1").Info(context.Background(), "served", "status", 302)

	out := buf.String()
	for _, want := range []string{"module=web", "request_id=r-1", "status=302", "msg=served"} {
		assert.Contains(t, out, want)
	}
}

func TestNewJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown", "user_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 7, rec["user_id"])
}

func TestSlogLogger_ContextAttrs(t *testing.T) {
	log, buf := newTextLogger(t)

	ctx := ContextWith(context.Background(), "request_id", "r-2")
	ctx = ContextWith(ctx, "user_id", 5)
	log.Warn(ctx, "slow", "ms", 900)

	out := buf.String()
	for _, want := range []string{"request_id=r-2", "user_id=5", "ms=900", "msg=slow"} {
		assert.Contains(t, out, want)
	}
}

func TestContextWith_DoesNotLeakIntoParent(t *testing.T) {
	log, buf := newTextLogger(t)

	parent := ContextWith(context.Background(), "a", 1)
	_ = ContextWith(parent, "b", 2)
	log.Info(parent, "parent only")

	assert.Contains(t, buf.String(), "a=1")
	assert.NotContains(t, buf.String(), "b=2")
}
