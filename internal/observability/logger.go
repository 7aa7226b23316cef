package observability

import (
	"context"

	"go.uber.org/zap"
)

// WithContext returns the logger with trace_id and span_id fields when the
// context carries an active span.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	tc := ExtractTrace(ctx)
	if tc == nil {
		return logger
	}

	return logger.With(
		zap.String("trace_id", tc.TraceID),
		zap.String("span_id", tc.SpanID),
	)
}
