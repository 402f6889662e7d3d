// SPDX-License-Identifier: EPL-2.0

// Package log builds the JSON logger used by the command line tools.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is millisecond precision RFC 3339.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// New returns a JSON logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: TimestampFormat,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}
