package bento

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger receives misuse reports and debug stats. Engine code runs on a single
// goroutine, so the variable is not guarded. Only valid with a single Game;
// the most recent SetLogger wins.
var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger
}

// NewLogger builds a JSON logger writing to stderr at the given level
// ("debug", "info", "warn", "error"). An empty level means "info".
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Named("bento"), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// misuse reports a programmer error that the engine recovers from.
func misuse(op, msg string, fields ...zap.Field) {
	logger.Warn(msg, append(fields, zap.String("op", op))...)
}

func componentFields(prefix string, c Component) []zap.Field {
	if isNil(c) {
		return []zap.Field{zap.Bool(prefix+"_nil", true)}
	}
	fields := []zap.Field{zap.String(prefix+"_name", nameOf(c))}
	if e, ok := c.(*Entity); ok {
		fields = append(fields, zap.Uint64(prefix+"_id", e.ID))
	}
	return fields
}
