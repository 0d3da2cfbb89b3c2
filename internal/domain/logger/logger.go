package logger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// QueryHook logs bun queries. Failures are logged as errors and queries
// slower than Slow as warnings. Everything else goes out at debug level.
type QueryHook struct {
	Slow time.Duration
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(slow time.Duration) *QueryHook {
	return &QueryHook{Slow: slow}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	took := time.Since(event.StartTime)
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", event.Operation()),
		slog.String("query", event.Query),
		slog.Duration("took", took),
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		slog.ErrorContext(ctx, "Query failed", append(attrs, slog.Any("error", event.Err))...)
	case h.Slow > 0 && took > h.Slow:
		slog.WarnContext(ctx, "Slow query", attrs...)
	default:
		if event.Result != nil {
			if n, err := event.Result.RowsAffected(); err == nil {
				attrs = append(attrs, slog.Int64("affected_rows", n))
			}
		}
		slog.DebugContext(ctx, "Query executed", attrs...)
	}
}
