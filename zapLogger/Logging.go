package zapLogger

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once sync.Once
	Log  *zap.SugaredLogger
)

// Init initializes the zap logger and returns the opened log file handle.
// Output goes to stdout and the file given by AUTHZ_LOG_FILE (default
// authz.log). AUTHZ_LOG_LEVEL=debug enables debug logging.
func Init() *os.File {
	var logFile *os.File
	once.Do(func() {
		path := os.Getenv("AUTHZ_LOG_FILE")
		if path == "" {
			path = "authz.log"
		}

		var err error
		logFile, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic("cannot open log file: " + err.Error())
		}

		level := zap.InfoLevel
		if os.Getenv("AUTHZ_LOG_LEVEL") == "debug" {
			level = zap.DebugLevel
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "timestamp"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(logFile)),
			level,
		)

		Log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	})
	return logFile
}

// FiberLoggingMiddleware returns Fiber's access-log middleware writing to
// stdout and the given log file.
func FiberLoggingMiddleware(logFile *os.File) fiber.Handler {
	return logger.New(logger.Config{
		Output:     io.MultiWriter(os.Stdout, logFile),
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	})
}
