package main

import (
	"github.com/platify/platify-core/internal/logger"
)

// initEarlyLogger installs a default logger for messages emitted before the
// configuration is loaded
func initEarlyLogger() {
	logger.InitLogger(logger.DefaultConfig())
}
