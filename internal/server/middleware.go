// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// NewLogger builds the server logger from config. With a file configured,
// output goes to a size-rotated log; otherwise to stdout. Release mode logs
// JSON for ingestion, debug mode stays human-readable.
func NewLogger(cfg types.LogConfig, mode string) *logrus.Logger {
	logger := logrus.New()

	switch cfg.Level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if mode == gin.ReleaseMode {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 50
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		})
	} else {
		logger.SetOutput(os.Stdout)
	}

	return logger
}

// requestLogger logs one line per handled request.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
			"method":    c.Request.Method,
			"path":      path,
		}).Info("HTTP request")
	}
}
