package database

import (
	"context"
	"log/slog"
	"time"
)

// logCall is the single timing/logging combinator applied around every
// connector method. It logs the call with its duration at debug level, or
// at error level when the call failed.
func logCall[T any](logger *slog.Logger, target, method string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	duration := time.Since(start)

	if err != nil {
		logger.Error("connector call failed",
			slog.String("target", target),
			slog.String("method", method),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return result, err
	}
	logger.Debug("connector call",
		slog.String("target", target),
		slog.String("method", method),
		slog.Duration("duration", duration))
	return result, err
}

// loggedConnector decorates a Connector so every method is wrapped by
// logCall. Applied once at connector construction time.
type loggedConnector struct {
	inner  Connector
	target string
	logger *slog.Logger
}

// Logged wraps the connector with uniform per-call timing and logging.
func Logged(target string, inner Connector, logger *slog.Logger) Connector {
	return &loggedConnector{inner: inner, target: target, logger: logger}
}

func (l *loggedConnector) Execute(ctx context.Context, query string, args ...any) error {
	_, err := logCall(l.logger, l.target, "Execute", func() (struct{}, error) {
		return struct{}{}, l.inner.Execute(ctx, query, args...)
	})
	return err
}

func (l *loggedConnector) FetchOne(ctx context.Context, query string, args ...any) (Record, error) {
	return logCall(l.logger, l.target, "FetchOne", func() (Record, error) {
		return l.inner.FetchOne(ctx, query, args...)
	})
}

func (l *loggedConnector) FetchMany(ctx context.Context, query string, size int, args ...any) (RecordSet, error) {
	return logCall(l.logger, l.target, "FetchMany", func() (RecordSet, error) {
		return l.inner.FetchMany(ctx, query, size, args...)
	})
}

func (l *loggedConnector) FetchAll(ctx context.Context, query string, args []any, page, pageSize int) (*PagedResult, error) {
	return logCall(l.logger, l.target, "FetchAll", func() (*PagedResult, error) {
		return l.inner.FetchAll(ctx, query, args, page, pageSize)
	})
}

func (l *loggedConnector) Ping(ctx context.Context) error {
	_, err := logCall(l.logger, l.target, "Ping", func() (struct{}, error) {
		return struct{}{}, l.inner.Ping(ctx)
	})
	return err
}

func (l *loggedConnector) Reconnect(ctx context.Context) error {
	_, err := logCall(l.logger, l.target, "Reconnect", func() (struct{}, error) {
		return struct{}{}, l.inner.Reconnect(ctx)
	})
	return err
}

func (l *loggedConnector) Close() {
	l.inner.Close()
}
