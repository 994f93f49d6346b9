package log

import (
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Fields is an alias so callers do not need to import logrus
type Fields = logrus.Fields

var logger = logrus.New()

// Init initialize logger
// Don't use init() otherwise get called before the conf file is parsed
func Init(logFile, logLevel string) error {

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %v", logLevel)
	}

	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logger.SetLevel(level)

	switch strings.ToLower(logFile) {
	case "", "stdout":
		logger.SetOutput(os.Stdout)
	case "stderr":
		logger.SetOutput(os.Stderr)
	default:
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			logger.SetOutput(os.Stdout)
			return errors.Wrapf(err, "could not open log file %v", logFile)
		}
		logger.SetOutput(f)
	}

	return nil
}

// SetLevel changes the level after Init, used by the --debug flag
func SetLevel(logLevel string) {
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		logger.SetLevel(level)
	}
}

// IsDebug reports whether debug messages are emitted
func IsDebug() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

func entry() *logrus.Entry {
	return logger.WithField("function", callerOf(3))
}

// Entry carries structured fields
type Entry struct {
	e *logrus.Entry
}

// WithFields returns an entry logging the given fields plus the caller name
func WithFields(fields Fields) *Entry {
	return &Entry{e: logger.WithField("function", callerOf(2)).WithFields(fields)}
}

// callerOf returns the short name of the function skip frames up the stack
func callerOf(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := path.Base(runtime.FuncForPC(pc).Name())
	if i := strings.Index(fn, "."); i >= 0 {
		fn = fn[i+1:]
	}
	return fn
}

func (e *Entry) Debug(args ...interface{}) { e.e.Debug(args...) }
func (e *Entry) Info(args ...interface{})  { e.e.Info(args...) }
func (e *Entry) Warn(args ...interface{})  { e.e.Warn(args...) }
func (e *Entry) Error(args ...interface{}) { e.e.Error(args...) }

func Debug(args ...interface{}) {
	entry().Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

func Info(args ...interface{}) {
	entry().Info(args...)
}

func Infof(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

func Warn(args ...interface{}) {
	entry().Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	entry().Warnf(format, args...)
}

func Error(args ...interface{}) {
	entry().Error(args...)
}

func Errorf(format string, args ...interface{}) {
	entry().Errorf(format, args...)
}
