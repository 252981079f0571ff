// Package logging builds the logrus logger shared by the controller and
// runner commands, configured from internal/config the way the teacher's
// common.NewLogger builds one from a LoggerConfig.
package logging

import (
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger. useJSON selects the JSON formatter for
// container log collection; filter is a logrus level name ("debug", "info",
// "warn", "error"), defaulting to info on an empty or invalid value.
func New(useJSON bool, filter string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(filter)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if useJSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	}
	return logger
}

// ServiceEntry returns a logger entry pre-tagged with the running service's
// name and version, mirroring the teacher's ServiceLogger.
func ServiceEntry(logger *logrus.Logger, service, version string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"service": service,
		"version": version,
	})
}
