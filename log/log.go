// Package log provides the logrus-backed logging facade used across playcore.
//
// Nothing is written unless logs.write is enabled; the destination is a dated file under
// the logs directory, so frontends that own the terminal are never disturbed.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/where"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled indicates the persistent logging state for the active application instance.
var enabled bool

// Setup initializes the log file, formatter and severity level from the global configuration.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	if exists := lo.Must(filesystem.API().Exists(path)); !exists {
		lo.Must(filesystem.API().Create(path))
	}

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Enabled reports whether log emissions reach the configured backend.
func Enabled() bool {
	return enabled
}

func logf(level logrus.Level, format string, args ...interface{}) {
	if enabled {
		logrus.StandardLogger().Logf(level, format, args...)
	}
}

func Errorf(format string, args ...interface{}) { logf(logrus.ErrorLevel, format, args...) }
func Warnf(format string, args ...interface{})  { logf(logrus.WarnLevel, format, args...) }
func Infof(format string, args ...interface{})  { logf(logrus.InfoLevel, format, args...) }
func Debugf(format string, args ...interface{}) { logf(logrus.DebugLevel, format, args...) }

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}
