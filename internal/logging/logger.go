package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	gormlogger "gorm.io/gorm/logger"
)

// Setup points logrus at stdout plus a rotating file and returns the shared
// writer so the HTTP access log can use the same sink.
func Setup(level, file string) io.Writer {
	out := io.Writer(os.Stdout)

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err == nil {
			rotator := &lumberjack.Logger{
				Filename:   file,
				MaxSize:    10, // megabytes
				MaxBackups: 7,
				MaxAge:     7, // days
				Compress:   true,
			}
			out = io.MultiWriter(os.Stdout, rotator)
		}
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return out
}

// AccessLog writes one line per request, skipping probe endpoints.
func AccessLog(w io.Writer) gin.HandlerFunc {
	return ginlogger.SetLogger(
		ginlogger.WithWriter(w),
		ginlogger.WithUTC(true),
		ginlogger.WithSkipPath([]string{"/health", "/metrics"}),
	)
}

// GormLogger routes SQL warnings and slow queries through logrus.
func GormLogger() gormlogger.Interface {
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
