package main

import (
	"time"

	"go.uber.org/zap"

	"localscoop-server/config"
	"localscoop-server/di"
)

func main() {
	cfg := config.Load()
	container := di.NewContainer(cfg)
	defer container.Logger.Sync()

	logger := container.Logger

	// Warm the cache once up front, then keep it warm in the background.
	container.PlaceRefresherService.RefreshPlaces()
	container.PlaceRefresherService.StartPeriodicJob(
		time.Duration(cfg.RefreshIntervalMinutes) * time.Minute)

	logger.Info("starting localscoop server",
		zap.String("address", cfg.ListenAddress),
		zap.Int("refresh_interval_minutes", cfg.RefreshIntervalMinutes))

	container.LocalScoopHttpServer.Start()
}
