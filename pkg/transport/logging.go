package transport

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/relayout-dev/relayout/pkg/api"
)

// Logging returns middleware that emits structured log entries for each
// conversion. The log entry includes the layout pair, input length in
// characters, duration, request ID (from context), and whether the request
// succeeded or failed. Text content is never logged.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next TextConverter) TextConverter {
		return TextConverterFunc(func(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			result, err := next.ConvertText(ctx, req)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("from", req.From),
				slog.String("to", req.To),
				slog.Int("length", utf8.RuneCountInString(req.Text)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "conversion failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "conversion completed", attrs...)
			}

			return result, err
		})
	}
}
