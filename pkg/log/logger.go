package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// L is the global structured logger (zap.Logger). Use it for high-performance logging.
	L *zap.Logger
	// S is the global sugared logger (zap.SugaredLogger). Use it for convenience (printf-style logging).
	S *zap.SugaredLogger
)

// Init initializes the global loggers L and S.
// logLevel can be "debug", "info", "warn", "error", "dpanic", "panic", "fatal".
// env can be "development" or "production" (anything else defaults to production).
func Init(logLevel string, env string) {
	var cfg zap.Config
	if strings.ToLower(env) == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		// Default to info if the level is invalid
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	// zap.AddCallerSkip(1) so the caller is the call site of L.Info etc.
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Logging is fundamental; if the logger cannot be built there is nothing sensible to do.
		panic(fmt.Sprintf("failed to build zap logger: %v", err))
	}

	L = logger
	S = logger.Sugar()

	// Replace zap globals so zap.L() and zap.S() work in packages that prefer them.
	zap.ReplaceGlobals(L)
}

func init() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	Init(logLevel, appEnv)
}
