package main

import (
	"os"

	"github.com/carson-networks/spend-analytics/internal/commands"
	"github.com/carson-networks/spend-analytics/internal/logging"
)

func main() {
	logger := logging.SetupLogging()

	if err := commands.NewRootCommand(logger).Execute(); err != nil {
		logger.WithError(err).Error("spend-analytics exited")
		os.Exit(1)
	}
}
