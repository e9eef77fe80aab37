package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger routes application logs through logrus.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger writing to out (stderr when nil). Verbose enables
// debug output; otherwise only errors are emitted.
func New(verbose bool, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    true,
	})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.ErrorLevel)
	}
	return &Logger{entry: l}
}

// NewStd creates a stderr Logger.
func NewStd(verbose bool) *Logger {
	return New(verbose, nil)
}

// Discard returns a Logger that drops everything, used by tests.
func Discard() *Logger {
	return New(false, io.Discard)
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.entry.WithFields(fields).WithError(err).Error(msg)
}
