package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "faceauth/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// queryLogger sends GORM output to slog. Statements are logged with their
// placeholders only, so password hashes and face descriptors never reach the log.
type queryLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var (
	_ gormlogger.Interface = (*queryLogger)(nil)
	_ gorm.ParamsFilter    = (*queryLogger)(nil)
)

// newQueryLogger logs every statement in debug mode and only failures and
// slow statements otherwise.
func newQueryLogger(logger *slog.Logger, debug bool) *queryLogger {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return &queryLogger{
		logger:        logger,
		level:         level,
		slowThreshold: slowQueryThreshold,
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

// ParamsFilter drops bound values before GORM renders a statement for logging.
func (l *queryLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var (
		level slog.Level
		msg   string
		extra []slog.Attr
	)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		level, msg = slog.LevelError, "Query failed"
		extra = append(extra, slog.String("error", err.Error()))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		level, msg = slog.LevelWarn, "Slow query"
		extra = append(extra, slog.Duration("threshold", l.slowThreshold))
	case l.level >= gormlogger.Info:
		level, msg = slog.LevelDebug, "Query"
	default:
		return
	}

	sql, rows := fc()
	attrs := append([]slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}, extra...)

	l.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *queryLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// loggerFor prefers the request-scoped logger so statements carry the request id.
func (l *queryLogger) loggerFor(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.logger
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.logger)
}
