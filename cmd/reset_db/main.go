package main

import (
	"context"
	"os"

	"ridedispatch/config"
	"ridedispatch/pkg/logger"
	"ridedispatch/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pg.Close()

	// Operational data only. Users, drivers, ride classes and extra options are kept.
	_, err = pg.GetPool().Exec(context.Background(),
		"TRUNCATE TABLE ride_extra_options, locations, rides, tokens, clients RESTART IDENTITY CASCADE")
	if err != nil {
		log.Error("Failed to truncate tables", logger.Error(err))
		return
	}
	log.Info("Successfully truncated rides, locations, ride_extra_options, tokens and clients")
}
