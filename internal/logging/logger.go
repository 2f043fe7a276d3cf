package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	// stdout carries table output, logs go to stderr
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel changes the level of Log from its name ("debug", "info", ...)
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	Log.SetLevel(level)
	return nil
}
