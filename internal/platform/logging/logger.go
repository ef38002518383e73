package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Options controls where and how verbosely the process logs.
type Options struct {
	Level string
	// File, when set, sends output to a rotating log file instead of stderr.
	File string
}

// New builds a logrus logger. Unknown levels fall back to info.
func New(opts Options) *logrus.Logger {
	l := logrus.New()

	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
	}
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	l.SetLevel(levelFromString(opts.Level))
	return l
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func levelFromString(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
