package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request identifier carried by the context, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned func runs.
// Use with defer and a named error return:
//
//	defer obs.Time(ctx, "osrm.GetRoute")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.Warn("op failed", "req_id", reqID, "op", name, "duration_ms", dur.Milliseconds(), "error", *errp)
			return
		}
		slog.Debug("op done", "req_id", reqID, "op", name, "duration_ms", dur.Milliseconds())
	}
}
