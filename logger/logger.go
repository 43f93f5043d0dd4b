package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*logrus.Logger
	fileLogger *logrus.Logger
}

type Options struct {
	Level string
	// File enables a rotated JSON log when set.
	File string
}

var defaultLogger = newLogger(os.Stderr)

func newLogger(out io.Writer) *Logger {
	console := logrus.New()
	console.SetFormatter(&logrus.TextFormatter{
		ForceColors:   isTerminal(out),
		FullTimestamp: true,
	})
	console.SetOutput(out)
	console.SetLevel(logrus.InfoLevel)
	return &Logger{Logger: console}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Init configures the package logger. It may be called again to reconfigure.
func Init(opts Options) error {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = l
	}
	defaultLogger.SetLevel(level)

	if opts.File == "" {
		defaultLogger.fileLogger = nil
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return err
	}
	fileLogger := logrus.New()
	fileLogger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	fileLogger.SetLevel(level)
	fileLogger.SetOutput(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
	defaultLogger.fileLogger = fileLogger
	return nil
}

// SetOutput redirects the console logger, mainly for tests.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

func each(fn func(l *logrus.Logger)) {
	fn(defaultLogger.Logger)
	if defaultLogger.fileLogger != nil {
		fn(defaultLogger.fileLogger)
	}
}

func Infof(format string, args ...any) {
	each(func(l *logrus.Logger) { l.Infof(format, args...) })
}

func Warnf(format string, args ...any) {
	each(func(l *logrus.Logger) { l.Warnf(format, args...) })
}

func Errorf(format string, args ...any) {
	each(func(l *logrus.Logger) { l.Errorf(format, args...) })
}

func Debugf(format string, args ...any) {
	each(func(l *logrus.Logger) { l.Debugf(format, args...) })
}

func Fatalf(format string, args ...any) {
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Errorf(format, args...)
	}
	defaultLogger.Logger.Fatalf(format, args...)
}
