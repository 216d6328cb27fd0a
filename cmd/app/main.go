package main

import (
	"github.com/rs/zerolog/log"

	"mehfil/config"
	"mehfil/di"
	"mehfil/shared/logger"
)

// @title Mehfil API
// @version 1.0
// @description Event and experience booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	server.Serve()
}
