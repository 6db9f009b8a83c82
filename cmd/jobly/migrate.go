package main

import (
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/agamjotsodhi/jobly/internal/database"
	"github.com/agamjotsodhi/jobly/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		loggerService := logger.NewLoggerService(cfg)
		defer loggerService.Shutdown(2 * time.Second)

		return database.Migrate(cmd.Context(), loggerService.Logger(), cfg)
	},
}
