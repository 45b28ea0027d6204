// Package skill dispatches resolved requests to capability handlers
// and turns their results into Kakao skill responses. Handler failures
// never escape: the processor converts every error into a fixed
// user-safe apology reply.
package skill

import (
	"context"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
)

// Handler serves one capability.
type Handler interface {
	// Capability returns the capability this handler serves.
	Capability() intent.Capability

	// Handle builds the reply for a resolved request. The context
	// carries the per-request processing deadline.
	Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error)
}

// Registry maps capabilities to their handlers.
type Registry struct {
	handlers map[intent.Capability]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[intent.Capability]Handler)}
}

// Register adds a handler, replacing any previous one for the same
// capability.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Capability()] = h
}

// Get returns the handler for a capability, or nil when none is
// registered.
func (r *Registry) Get(capability intent.Capability) Handler {
	return r.handlers[capability]
}
