// Package logger builds the logrus logger shared by every component.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out. Production and staging get JSON
// lines; anything else gets human readable text. An unknown level falls
// back to info with a warning.
func New(level, environment string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if isStructured(environment) {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.WithError(err).Warnf("invalid log level %q, using info", level)
		return log
	}
	log.SetLevel(parsed)
	return log
}

func isStructured(environment string) bool {
	switch strings.ToLower(environment) {
	case "production", "staging":
		return true
	}
	return false
}
