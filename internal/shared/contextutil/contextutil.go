package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey adalah tipe privat agar tidak terjadi tabrakan key dengan library lain
type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	userIDKey      contextKey = "user_id"
	accessTokenKey contextKey = "access_token"
	loggerKey      contextKey = "logger"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- User ID Helpers ---

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}

// --- Access Token Helpers ---

// WithAccessToken stores the caller's bearer token so outbound calls to the
// ObraCheck backend can act on behalf of the same user.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

func GetAccessToken(ctx context.Context) string {
	if t, ok := ctx.Value(accessTokenKey).(string); ok {
		return t
	}
	return ""
}

// --- Logger Helpers ---

// WithLogger memasukkan zap logger (yang biasanya sudah di-decorate) ke context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengambil logger dari context.
// Jika tidak ada, mengembalikan fallback (defaultLogger) agar tidak panic.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// --- Combined Metadata ---

type Metadata struct {
	RequestID   string
	UserID      string
	AccessToken string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID:   GetRequestID(ctx),
		UserID:      GetUserID(ctx),
		AccessToken: GetAccessToken(ctx),
	}
}

// CopyMetadata carries request-scoped values from src onto dst. Work that
// outlives the HTTP request (detached writes) keeps its tracing fields and
// credentials while taking cancellation from dst.
func CopyMetadata(dst, src context.Context) context.Context {
	md := ExtractMetadata(src)
	if md.RequestID != "" {
		dst = WithRequestID(dst, md.RequestID)
	}
	if md.UserID != "" {
		dst = WithUserID(dst, md.UserID)
	}
	if md.AccessToken != "" {
		dst = WithAccessToken(dst, md.AccessToken)
	}
	if l, ok := src.Value(loggerKey).(*zap.Logger); ok && l != nil {
		dst = WithLogger(dst, l)
	}
	return dst
}
