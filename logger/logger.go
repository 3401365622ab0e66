package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// Init initializes the global logger. Production encoding when ENV=production,
// development otherwise.
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = l
}

// Close flushes buffered entries; call it before the process exits.
func Close() {
	_ = Logger.Sync()
}

func get() *zap.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

func Debug(msg string, fields ...zapcore.Field) { get().Debug(msg, fields...) }
func Info(msg string, fields ...zapcore.Field)  { get().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { get().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { get().Error(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { get().Fatal(msg, fields...) }
