package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// rootLogger holds the logger used by the package level helpers. The codec
// packages log through it, so library users see nothing until SetDefault.
//
// 默认丢弃所有日志；库的调用方通过 SetDefault 打开输出。
var rootLogger atomic.Pointer[Logger]

func init() {
	SetDefault(NewLogger(DiscardHandler()))
}

// SetDefault replaces the logger behind the package level helpers. A plain
// slog-backed logger is installed as the slog default too.
func SetDefault(l Logger) {
	rootLogger.Store(&l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the logger currently installed with SetDefault.
func Root() Logger {
	return *rootLogger.Load()
}

// TraceEnabled reports whether the root logger emits trace records. Decoders
// check it before formatting per-value context.
func TraceEnabled() bool {
	return Root().Enabled(context.Background(), LevelTrace)
}

// The helpers below call Write directly so that every path to logger.Write
// has the same depth and the recorded source is the caller's line.

// Trace logs at trace level on the root logger.
//
//	log.Trace("ABI decoded", "types", 2, "size", 96)
func Trace(msg string, ctx ...interface{}) {
	Root().Write(LevelTrace, msg, ctx...)
}

func Debug(msg string, ctx ...interface{}) {
	Root().Write(LevelDebug, msg, ctx...)
}

func Info(msg string, ctx ...interface{}) {
	Root().Write(LevelInfo, msg, ctx...)
}

func Warn(msg string, ctx ...interface{}) {
	Root().Write(LevelWarn, msg, ctx...)
}

func Error(msg string, ctx ...interface{}) {
	Root().Write(LevelError, msg, ctx...)
}
