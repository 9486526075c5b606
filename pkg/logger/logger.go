package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()

	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableQuote:    true,
		DisableSorting:  false,
		PadLevelText:    true,
	})
}

// getCallerInfo returns the file and line number of the calling function
func getCallerInfo() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}

	parts := strings.Split(file, "/")
	filename := parts[len(parts)-1]

	return filename, line
}

func Debug(format string, args ...interface{}) {
	file, line := getCallerInfo()
	log.Debugf("%s:%d "+format, append([]interface{}{file, line}, args...)...)
}

func Info(format string, args ...interface{}) {
	file, line := getCallerInfo()
	log.Infof("%s:%d "+format, append([]interface{}{file, line}, args...)...)
}

func Warn(format string, args ...interface{}) {
	file, line := getCallerInfo()
	log.Warnf("%s:%d "+format, append([]interface{}{file, line}, args...)...)
}

func Error(err error, format string, args ...interface{}) {
	file, line := getCallerInfo()

	fields := logrus.Fields{}

	if err != nil {
		fields["error"] = err.Error()
	}

	log.WithFields(fields).Errorf("%s:%d "+format, append([]interface{}{file, line}, args...)...)
}

func Fatal(err error, format string, args ...interface{}) {
	file, line := getCallerInfo()

	fields := logrus.Fields{}

	if err != nil {
		fields["error"] = err.Error()
	}

	log.WithFields(fields).Fatalf("%s:%d "+format, append([]interface{}{file, line}, args...)...)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields adds multiple fields to the logger
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithModule tags entries with the subsystem that produced them.
func WithModule(module fmt.Stringer) *logrus.Entry {
	return log.WithField("module", module.String())
}

// SetLevel sets the log level directly
func SetLevel(levelStr string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}

	log.SetLevel(level)
	return nil
}

// SetOutput redirects log output; tests use it to keep output quiet.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// GetLogger returns the underlying logrus logger
func GetLogger() *logrus.Logger {
	return log
}
