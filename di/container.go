package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"localscoop-server/api"
	"localscoop-server/api/places"
	"localscoop-server/config"
	redisdao "localscoop-server/dao/redis"
	"localscoop-server/db"
	"localscoop-server/models"
	"localscoop-server/ratelimit"
	"localscoop-server/server"
	"localscoop-server/server/handlers"
	services "localscoop-server/service"
	"localscoop-server/util"
)

// Container holds all application dependencies.
type Container struct {
	Logger                *zap.Logger
	RedisClient           db.RedisClient
	RedisPlaceDao         *redisdao.RedisPlaceDAO
	PlacesAPI             places.PlacesAPI
	PlaceService          *services.PlaceService
	PlaceRefresherService *services.PlaceRefresherService
	ActorLimiter          *ratelimit.ActorLimiter
	PlaceHandler          *handlers.PlaceHandler
	MuxRouter             *mux.Router
	Router                *server.Router
	LocalScoopHttpServer  *server.LocalScoopHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config) *Container {
	logger := newLogger(cfg.Env)
	logger.Info("initializing container", zap.String("env", cfg.Env))

	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	redisClient := db.NewTTLRedisClient(ctx, redisInternalClient, logger)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	placeDao := redisdao.NewRedisPlaceDAO(redisClient, cfg.CacheSalt, logger)

	providers := config.DefaultCredentialProviders(placeDao)

	// With no credential configured the handlers answer before reaching
	// the service: the JSON endpoints report the missing key and the
	// render endpoint falls back to the sample record.
	if config.ResolveCredential(providers) == "" {
		logger.Warn("no Places API credential configured")
	}
	var placesApi places.PlacesAPI = places.NewPlacesApiClient(
		api.NewHTTPClient(places.PLACES_ENDPOINT_BASE))

	hoursZone, err := time.LoadLocation(cfg.HoursTimeZone)
	if err != nil {
		logger.Warn("unknown hours time zone, falling back to UTC",
			zap.String("zone", cfg.HoursTimeZone))
		hoursZone = time.UTC
	}

	placeService := services.NewPlaceService(placeDao, placesApi, hoursZone, logger)

	placeRefresherService := services.NewPlaceRefresherService(
		placeService, providers, resolveRefreshPlaceIDs(cfg, logger), logger)

	actorLimiter := ratelimit.NewActorLimiter(
		config.RATE_LIMIT_REQUESTS,
		config.RATE_LIMIT_WINDOW_SECONDS*time.Second,
		logger)

	placeHandler := handlers.NewPlaceHandler(
		placeService,
		actorLimiter,
		providers,
		cfg.EditorTokens,
		loadSampleRecord(logger),
		logger)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(placeHandler, muxRouter)

	// The cache is purged at teardown; persisted options survive.
	purgeCache := func() {
		if err := placeDao.PurgeAll(); err != nil {
			logger.Warn("cache purge at shutdown failed", zap.Error(err))
		}
	}
	localScoopHttpServer := server.NewLocalScoopHttpServer(
		router, muxRouter, cfg.ListenAddress, logger, purgeCache)

	return &Container{
		Logger:                logger,
		RedisClient:           redisClient,
		RedisPlaceDao:         placeDao,
		PlacesAPI:             placesApi,
		PlaceService:          placeService,
		PlaceRefresherService: placeRefresherService,
		ActorLimiter:          actorLimiter,
		PlaceHandler:          placeHandler,
		MuxRouter:             muxRouter,
		Router:                router,
		LocalScoopHttpServer:  localScoopHttpServer,
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(fmt.Sprintf("Failed to build logger: %v", err))
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}
	return logger
}

// resolveRefreshPlaceIDs picks the refresher's place list. A configured
// JSON file takes precedence over the inline env list; a broken file
// falls back to the inline list rather than disabling the refresher.
func resolveRefreshPlaceIDs(cfg *config.Config, logger *zap.Logger) []string {
	if cfg.RefreshPlaceIDsFile == "" {
		return cfg.RefreshPlaceIDs
	}
	ids, err := util.ReadPlaceIDs(cfg.RefreshPlaceIDsFile)
	if err != nil {
		logger.Warn("failed to load refresh place ID file",
			zap.String("path", cfg.RefreshPlaceIDsFile),
			zap.Error(err))
		return cfg.RefreshPlaceIDs
	}
	return ids
}

// loadSampleRecord reads the bundled sample place. A missing or broken
// fixture is not fatal; the handler falls back to its built-in record.
func loadSampleRecord(logger *zap.Logger) *models.PlaceRecord {
	record, err := util.ReadPlaceRecordFromJSON(
		config.GetResourcePath(config.SAMPLE_PLACE_RESOURCE))
	if err != nil {
		logger.Warn("failed to load sample place fixture", zap.Error(err))
		return nil
	}
	return record
}
