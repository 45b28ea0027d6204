// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey  contextKey = "ctxutil.requestID"
	userIDKey     contextKey = "ctxutil.userID"
	capabilityKey contextKey = "ctxutil.capability"
)

// WithRequestID adds a request ID to the context for tracing.
// A request ID is generated per skill webhook request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// WithUserID adds a Kakao user ID to the context.
// The user ID comes from userRequest.user.id in the skill payload.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the Kakao user ID from the context.
// Returns the user ID if found, empty string otherwise.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok && userID != "" {
			return userID
		}
	}
	return ""
}

// WithCapability adds the resolved capability name to the context.
// Set once per request after intent resolution so every downstream log
// line carries the capability without explicit plumbing.
func WithCapability(ctx context.Context, capability string) context.Context {
	return context.WithValue(ctx, capabilityKey, capability)
}

// GetCapability retrieves the resolved capability name from the context.
// Returns the capability if found, empty string otherwise.
func GetCapability(ctx context.Context) string {
	if v := ctx.Value(capabilityKey); v != nil {
		if capability, ok := v.(string); ok && capability != "" {
			return capability
		}
	}
	return ""
}
