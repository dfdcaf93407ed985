package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the JSON logger used across the storage pipeline. LOG_LEVEL
// selects the level, defaulting to warn so normal CLI output stays clean.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	return log
}
