package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

type GormLoggerConfig struct {
	Level     gormlogger.LogLevel
	SlowQuery time.Duration
	// NotFoundIsError logs gorm.ErrRecordNotFound at error level.
	NotFoundIsError bool
}

func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{Level: gormlogger.Warn, SlowQuery: 200 * time.Millisecond}
}

// GormLogger writes gorm statements to the request-scoped zap logger as
// "db.query" entries tagged with operation and table. Bound parameters are
// never logged.
type GormLogger struct {
	base *zap.Logger
	cfg  GormLoggerConfig
}

func NewGormLogger(base *zap.Logger, cfg GormLoggerConfig) *GormLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &GormLogger{base: base.Named("gorm"), cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Info {
		l.write(ctx, zapcore.InfoLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Warn {
		l.write(ctx, zapcore.WarnLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Error {
		l.write(ctx, zapcore.ErrorLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	level, ok := l.traceLevel(err, elapsed)
	if !ok {
		return
	}

	sql, rows := fc()
	op, table := describeSQL(sql)
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("elapsed", elapsed),
	}
	if table != "" {
		fields = append(fields, zap.String("table", table))
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if level == zapcore.WarnLevel {
		fields = append(fields, zap.Bool("slow", true))
	}
	l.write(ctx, level, "db.query", fields...)
}

func (l *GormLogger) traceLevel(err error, elapsed time.Duration) (zapcore.Level, bool) {
	lvl := l.cfg.Level
	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)
	switch {
	case lvl <= gormlogger.Silent:
		return 0, false
	case err != nil && (!notFound || l.cfg.NotFoundIsError):
		return zapcore.ErrorLevel, lvl >= gormlogger.Error
	case l.cfg.SlowQuery > 0 && elapsed > l.cfg.SlowQuery && lvl >= gormlogger.Warn:
		return zapcore.WarnLevel, true
	case lvl >= gormlogger.Info:
		return zapcore.DebugLevel, true
	}
	return 0, false
}

func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) write(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	if ce := WithContext(ctx, l.base).Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// describeSQL returns the statement verb and the first table it touches.
func describeSQL(sql string) (op, table string) {
	tokens := strings.Fields(strings.ToUpper(sql))
	raw := strings.Fields(sql)
	op = "UNKNOWN"
	for i, tok := range tokens {
		tok = strings.Trim(tok, "();")
		if op == "UNKNOWN" {
			switch tok {
			case "SELECT", "INSERT", "UPDATE", "DELETE":
				op = tok
				if tok == "UPDATE" && i+1 < len(raw) {
					return op, tableName(raw[i+1])
				}
			}
			continue
		}
		if (tok == "FROM" || tok == "INTO") && i+1 < len(raw) {
			return op, tableName(raw[i+1])
		}
	}
	return op, ""
}

func tableName(tok string) string {
	return strings.Trim(tok, "\"`();")
}

var _ gormlogger.Interface = (*GormLogger)(nil)
