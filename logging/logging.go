package logging

import (
	"context"
	"io"
	"os"

	"bitbucket.org/kleinnic74/geodist/consts"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const (
	loggerKey = loggerKeyType("logger")

	memoryLines = 1000
)

var (
	rootLogger *zap.Logger
	memory     LogsExporter
)

func init() {
	Init(consts.IsDevMode())
}

// Init (re)builds the root logger. Loggers already handed out keep their
// previous configuration.
func Init(devmode bool) {
	debugFilter := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.DebugLevel
	})
	infoFilter := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.InfoLevel
	})

	var cores []zapcore.Core
	var memoryFilter zap.LevelEnablerFunc
	if devmode {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), debugFilter))
		memoryFilter = debugFilter
	} else {
		jsonEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.Lock(os.Stdout), infoFilter))
		memoryFilter = infoFilter
	}

	sink := NewMemoryLogger(memoryLines)
	memory = sink.(LogsExporter)
	memoryEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores = append(cores, zapcore.NewCore(memoryEncoder, sink, memoryFilter))

	rootLogger = zap.New(zapcore.NewTee(cores...))
	rootLogger.With(zap.Bool("devmode", devmode)).Info("Logging initialized")
}

// Dump writes the most recent log lines kept in memory to w, newest first
// when revert is set.
func Dump(w io.Writer, revert bool) error {
	return memory.Export(w, revert)
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	l := ctx.Value(loggerKey)
	if l == nil {
		return rootLogger
	}
	return l.(*zap.Logger)
}

func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, Context(ctx, logger)
}

func Context(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = rootLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

func FromWithNameAndFields(ctx context.Context, name string, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...).Named(name)
	ctx = Context(ctx, logger)
	return logger, ctx
}

func FromWithFields(ctx context.Context, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...)
	ctx = Context(ctx, logger)
	return logger, ctx
}
