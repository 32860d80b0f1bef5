package logger

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"droppoint-partner-api/internal/config"
)

// NewLogger returns a file-backed logrus logger writing under logs/<logType>/
// with daily rotation and 30 days of history.
func NewLogger(logType string) *logrus.Logger {
	log := logrus.New()
	logPath := filepath.Join("logs", logType)
	_ = os.MkdirAll(logPath, 0755)

	writer, _ := rotatelogs.New(
		filepath.Join(logPath, logType+".log.%Y-%m-%d"),
		rotatelogs.WithLinkName(filepath.Join(logPath, logType+".log")),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(30*24*time.Hour),
	)

	log.SetOutput(writer)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
	})
	if config.C.Server.Mode == "debug" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
