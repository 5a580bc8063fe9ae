// internal/logger/logger.go
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	loggers []*logrus.Logger
	level   = levelFromEnv()
)

func levelFromEnv() logrus.Level {
	lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// NewLogger returns a logrus logger writing text lines to stdout.
// The level comes from LOG_LEVEL and defaults to info; SetLevel changes it
// later for every logger created here.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	mu.Lock()
	l.SetLevel(level)
	loggers = append(loggers, l)
	mu.Unlock()
	return l
}

// SetLevel applies the named level to all package loggers, including the
// ones created at init before configuration was loaded.
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
	return nil
}
