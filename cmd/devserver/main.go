package main

import (
	"os"

	"vendeya/internal/stubserver"
	"vendeya/pkg/config"
	"vendeya/pkg/logger"
)

// devserver runs the in-memory backend so the client can be exercised
// without the real VendeYa deployment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	server := stubserver.New()
	server.SeedDemo()

	logger.Info("Dev server listening on :%s", cfg.ServerPort)
	if err := server.Start(":" + cfg.ServerPort); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
