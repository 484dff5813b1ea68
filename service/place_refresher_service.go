package services

import (
	"time"

	"go.uber.org/zap"

	"localscoop-server/config"
)

// PlaceRefresherService periodically re-resolves a configured list of
// place IDs so their cache entries stay warm inside the TTL window.
type PlaceRefresherService struct {
	placeService *PlaceService
	providers    []config.CredentialProvider
	placeIDs     []string
	logger       *zap.Logger
}

// NewPlaceRefresherService constructs a new refresher with dependencies.
func NewPlaceRefresherService(
	placeService *PlaceService,
	providers []config.CredentialProvider,
	placeIDs []string,
	logger *zap.Logger) *PlaceRefresherService {

	return &PlaceRefresherService{
		placeService: placeService,
		providers:    providers,
		placeIDs:     placeIDs,
		logger:       logger,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
// With no configured place IDs the refresher stays idle.
func (pr *PlaceRefresherService) StartPeriodicJob(interval time.Duration) {
	if len(pr.placeIDs) == 0 {
		pr.logger.Info("place refresher disabled: no place IDs configured")
		return
	}
	go pr.startPeriodicJob(interval)
}

func (pr *PlaceRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		pr.RefreshPlaces()
	}
}

// RefreshPlaces re-resolves every configured place ID, continuing past
// per-place failures.
func (pr *PlaceRefresherService) RefreshPlaces() {
	credential := config.ResolveCredential(pr.providers)
	if credential == "" {
		pr.logger.Info("skipping place refresh: no credential configured")
		return
	}

	pr.logger.Info("refreshing places", zap.Int("count", len(pr.placeIDs)))
	for _, placeID := range pr.placeIDs {
		if _, err := pr.placeService.RefreshPlace(placeID, credential); err != nil {
			pr.logger.Warn("place refresh failed",
				zap.String("place_id", placeID),
				zap.Error(err))
			continue
		}
		pr.logger.Debug("place refreshed", zap.String("place_id", placeID))
	}
}
