package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/config"
)

// Logger is the logger handed to every component.
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a JSON logger at the level named by LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// OrNop returns logger, or a logger that discards everything when it is nil.
func OrNop(logger Logger) Logger {
	if logger != nil {
		return logger
	}
	nop := logrus.New()
	nop.SetOutput(io.Discard)
	return nop
}

// NewLoggerWithService creates a logger that stamps every entry with the service name.
func NewLoggerWithService(serviceName string) *logrus.Logger {
	logger := NewLogger()
	logger.AddHook(serviceHook{service: serviceName})
	return logger
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}
