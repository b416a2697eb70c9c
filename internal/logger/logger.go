// Package logger wraps a process-wide zap logger configured from the environment:
//
//   - LOG_LEVEL=debug|info|warn|error (default info)
//   - LOG_FILE=./logs/app.log enables a rotated file sink next to stdout
//   - LOG_MAX_SIZE_MB=100, LOG_MAX_BACKUPS=7, LOG_MAX_DAYS=14, LOG_COMPRESS=true
package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	log         = zap.NewNop()
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func Init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	atomicLevel.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	enc := zapcore.NewJSONEncoder(encoderConfig)
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), atomicLevel),
	}

	if logFile := strings.TrimSpace(os.Getenv("LOG_FILE")); logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "warning: failed to create log directory for %s: %v\n", logFile, err)
		} else {
			lw := &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    getenvInt("LOG_MAX_SIZE_MB", 100),
				MaxBackups: getenvInt("LOG_MAX_BACKUPS", 7),
				MaxAge:     getenvInt("LOG_MAX_DAYS", 14),
				Compress:   getenvBool("LOG_COMPRESS", true),
			}
			cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(lw), atomicLevel))
		}
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// Replace swaps the global logger, mainly so tests can observe output.
func Replace(l *zap.Logger) {
	log = l.WithOptions(zap.AddCallerSkip(1))
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }
func Sync()                                 { _ = log.Sync() }

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	log.Info(msg, withRequestID(ctx, fields)...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	log.Warn(msg, withRequestID(ctx, fields)...)
}

func ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	log.Error(msg, withRequestID(ctx, fields)...)
}

func withRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return fields
}
