package main

import (
	"clinic/config"
	"clinic/di"
	"clinic/helper"
	"clinic/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations on startup.")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
