package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormZapLogger routes GORM's logger interface into zap. Session
// submissions bulk-insert a full beat timeline in one transaction, so
// the slow threshold is set with multi-row inserts in mind.
type GormZapLogger struct {
	zap       *zap.Logger
	level     gormlogger.LogLevel
	slowAfter time.Duration
}

func NewGormZapLogger(log *zap.Logger) *GormZapLogger {
	return &GormZapLogger{
		zap:       log,
		level:     gormlogger.Info,
		slowAfter: 200 * time.Millisecond,
	}
}

func (l *GormZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormZapLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zap.Sugar().Infof(msg, args...)
	}
}

func (l *GormZapLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zap.Sugar().Warnf(msg, args...)
	}
}

func (l *GormZapLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zap.Sugar().Errorf(msg, args...)
	}
}

// Trace logs each statement with its latency and row count. Missing
// rows are routine (previous-result lookups on a user's first session)
// and are not treated as errors.
func (l *GormZapLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.zap.Error("Query failed", append(fields, zap.Error(err))...)
	case elapsed > l.slowAfter && l.level >= gormlogger.Warn:
		l.zap.Warn("Slow query", fields...)
	case l.level >= gormlogger.Info:
		l.zap.Debug("Query", fields...)
	}
}
