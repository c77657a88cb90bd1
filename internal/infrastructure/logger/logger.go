package logger

import (
	"os"
	"strings"

	"hr-portal-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger; components receive it as a logrus.FieldLogger.
var Log = logrus.New()

// Init applies level and formatter from config. Production and staging log JSON.
func Init(cfg *config.Config) {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("invalid log level %q, defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if cfg.IsProduction() {
		Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	Log.WithFields(logrus.Fields{"level": level.String(), "environment": cfg.Environment}).Debug("logger initialized")
}
