package database

import (
	"context"
	"errors"
	"time"

	"github.com/go-arcade/edo/pkg/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerAdapter routes gorm output to the global zap logger. The logger is
// resolved per call so a reconfigured global logger is picked up.
type GormLoggerAdapter struct {
	Config logger.Config
}

func NewGormLoggerAdapter(config logger.Config) *GormLoggerAdapter {
	return &GormLoggerAdapter{Config: config}
}

func (l *GormLoggerAdapter) LogMode(level logger.LogLevel) logger.Interface {
	next := *l
	next.Config.LogLevel = level
	return &next
}

func (l *GormLoggerAdapter) logger(ctx context.Context) *zap.SugaredLogger {
	s := log.GetLogger().Desugar().WithOptions(zap.AddCallerSkip(3)).Sugar()
	if ctx == nil {
		return s
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		s = s.With("trace_id", sc.TraceID().String())
	}
	return s
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel < logger.Info {
		return
	}
	l.logger(ctx).Infof(msg, data...)
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel < logger.Warn {
		return
	}
	l.logger(ctx).Warnf(msg, data...)
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel < logger.Error {
		return
	}
	l.logger(ctx).Errorf(msg, data...)
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error &&
		(!errors.Is(err, logger.ErrRecordNotFound) || !l.Config.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.logger(ctx).Errorw("SQL query failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Config.LogLevel >= logger.Warn:
		sql, rows := fc()
		l.logger(ctx).Warnw("Slow SQL query", "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.Config.LogLevel == logger.Info:
		sql, rows := fc()
		l.logger(ctx).Debugw("SQL query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
