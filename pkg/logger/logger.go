// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line emitted while serving a
// request is automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID.Hex())
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_id=...
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/kipngetich-lab/TukoShop-App/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newHandler())
	slog.SetDefault(L)
}

// newHandler picks the output format by APP_ENV (JSON in production for log
// aggregators, text otherwise) and the minimum level by LOG_LEVEL.
func newHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: minLevel()}

	switch config.AppEnv() {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, opts)
	default:
		return slog.NewTextHandler(os.Stdout, opts)
	}
}

func minLevel() slog.Level {
	switch strings.ToLower(config.Get("LOG_LEVEL", "")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}

	// Unset: debug locally, info in production.
	if env := config.AppEnv(); env == "production" || env == "prod" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger injected by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; not usually needed in application code.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
