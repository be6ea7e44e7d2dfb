// Package requestcontext carries per-request metadata through context values.
// Keys are unexported struct types so other packages cannot collide with them.
package requestcontext

import "context"

type (
	requestIDKey  struct{}
	userAgentKey  struct{}
	deviceNameKey struct{}
)

// WithRequestID stores the correlation ID for this request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation ID, or "" when none was set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithUserAgent stores the raw User-Agent header value.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// UserAgent returns the raw User-Agent header value, or "".
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithDeviceName stores the human-readable device description ("Chrome on macOS").
func WithDeviceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, deviceNameKey{}, name)
}

// DeviceName returns the device description, or "".
func DeviceName(ctx context.Context) string {
	if name, ok := ctx.Value(deviceNameKey{}).(string); ok {
		return name
	}
	return ""
}
