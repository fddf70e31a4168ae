package logging

import (
	"log"

	"go.uber.org/zap"
)

// New builds the application logger. Dev gets the human-readable console
// encoder, everything else the production JSON encoder.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	return logger
}
