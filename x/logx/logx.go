// Package logx builds the process logger: logrus with the prefixed text
// formatter. Components derive entries with a "prefix" field.
package logx

import (
	"io"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

// New returns a root entry at level writing to out (stderr if nil).
func New(level logrus.Level, out io.Writer) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetLevel(level)
	f := new(prefixed.TextFormatter)
	f.TimestampFormat = "2006-01-02 15:04:05"
	f.FullTimestamp = true
	f.PrefixPadding = 12
	f.SpacePadding = 40
	logger.SetFormatter(f)
	return logrus.NewEntry(logger)
}

// ParseLevel accepts logrus level names; empty means info.
func ParseLevel(s string) (logrus.Level, error) {
	if s == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(s)
}

// Discard returns an entry that drops everything, for tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Component tags e with a prefix.
func Component(e *logrus.Entry, name string) *logrus.Entry {
	return e.WithField("prefix", name)
}
