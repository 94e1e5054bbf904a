package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It is usable before Init is called
// so that packages under test do not need explicit setup.
var Log = logrus.New()

// Init configures the shared logger: JSON output to stdout with the level
// taken from the LOG_LEVEL environment variable (info by default).
func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
