package providers

import (
	"context"
	"log/slog"
)

// logWithProvider logs with the provider name attached, so wrapper layers
// (retry, rate limit) stay attributable. Nil loggers are tolerated.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String("provider", provider))
	logger.Log(ctx, level, msg, args...)
}
