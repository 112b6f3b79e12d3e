package logger

import (
	"context"

	"go.uber.org/zap"
)

var global = newSugared()

func newSugared() *zap.SugaredLogger {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// Replace swaps the package logger; used by main after config is read and by
// tests that want a nop logger.
func Replace(l *zap.Logger) {
	global = l.Sugar().WithOptions(zap.AddCallerSkip(1))
}

func Info(_ context.Context, args ...interface{}) {
	global.Info(args...)
}

func Infof(_ context.Context, format string, args ...interface{}) {
	global.Infof(format, args...)
}

func Warnf(_ context.Context, format string, args ...interface{}) {
	global.Warnf(format, args...)
}

func Error(_ context.Context, args ...interface{}) {
	global.Error(args...)
}

func Errorf(_ context.Context, format string, args ...interface{}) {
	global.Errorf(format, args...)
}

func Fatal(_ context.Context, args ...interface{}) {
	global.Fatal(args...)
}
