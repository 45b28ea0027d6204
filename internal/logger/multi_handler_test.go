package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	log := slog.New(h)

	log.Info("hello")

	if !strings.Contains(a.String(), "hello") {
		t.Error("first handler did not receive record")
	}
	if !strings.Contains(b.String(), "hello") {
		t.Error("second handler did not receive record")
	}
}

func TestMultiHandler_NilFiltered(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewJSONHandler(&buf, nil), nil)
	log := slog.New(h)

	log.Info("still works")

	if !strings.Contains(buf.String(), "still works") {
		t.Error("record lost after nil filtering")
	}
}

func TestMultiHandler_LevelRespected(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false, want true when any handler accepts")
	}

	slog.New(h).Info("info only")

	if !strings.Contains(debugBuf.String(), "info only") {
		t.Error("debug handler missed info record")
	}
	if errorBuf.Len() != 0 {
		t.Error("error-level handler received info record")
	}
}
