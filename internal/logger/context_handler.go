package logger

import (
	"context"
	"log/slog"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/ctxutil"
)

// ContextHandler is a slog.Handler that automatically extracts tracing
// values (request ID, Kakao user ID, resolved capability) from the context
// and adds them as attributes to log records.
//
// This handler wraps another handler and intercepts all logging calls,
// eliminating the need to manually extract and pass these values at every
// logging call site.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the provided handler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle enriches the record with context values before delegating to the
// wrapped handler. Canceling the context does not affect record processing
// (per slog.Handler contract).
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID, ok := ctxutil.GetRequestID(ctx); ok && requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	if userID := ctxutil.GetUserID(ctx); userID != "" {
		r.AddAttrs(slog.String("user_id", userID))
	}
	if capability := ctxutil.GetCapability(ctx); capability != "" {
		r.AddAttrs(slog.String("capability", capability))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler with the given group appended.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
