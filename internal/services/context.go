package services

import "context"

type contextKey string

const (
	photoIDKey   contextKey = "photo_id"
	requestIDKey contextKey = "request_id"
)

// WithPhotoID annotates context with the photo identifier being processed.
func WithPhotoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, photoIDKey, id)
}

// PhotoIDFromContext extracts the photo identifier if present.
func PhotoIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(photoIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
