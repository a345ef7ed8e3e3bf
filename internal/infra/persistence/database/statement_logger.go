package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/config"
	"marketplace/internal/errors"
	logs "marketplace/internal/infra/log"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowStatementThreshold = 200 * time.Millisecond

// statementLogger sends gorm output to slog. Statements issued by a use case
// are logged with that operation's logger, so they share its operationID.
type statementLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newStatementLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &statementLogger{base: base, level: level, slowThreshold: slowStatementThreshold}
}

func (l *statementLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *statementLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *statementLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *statementLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *statementLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.base == nil || l.level < threshold {
		return
	}
	l.loggerFor(ctx).LogAttrs(ctx, level, "Database message", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements as errors and slow ones as warnings. Other
// statements are only logged in debug mode. Missing rows are expected
// lookups and never logged.
func (l *statementLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		level, msg, extra = slog.LevelError, "Database statement failed", slog.String("error", err.Error())
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		level, msg, extra = slog.LevelWarn, "Slow database statement", slog.Duration("threshold", l.slowThreshold)
	case l.level >= logger.Info:
		level, msg = slog.LevelInfo, "Database statement"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}
	l.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *statementLogger) loggerFor(ctx context.Context) *slog.Logger {
	return logs.GetLoggerOrDefault(ctx, l.base)
}
