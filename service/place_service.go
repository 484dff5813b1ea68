package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"localscoop-server/api/places"
	"localscoop-server/config"
	redisdao "localscoop-server/dao/redis"
	"localscoop-server/hours"
	"localscoop-server/models"
	"localscoop-server/sanitize"
)

// ErrInvalidInput is returned before any cache or network access when the
// place ID or credential fails format validation.
var ErrInvalidInput = errors.New("invalid place ID or credential")

// PlaceService resolves display-ready place records: cache lookup first,
// then a single upstream fetch, normalize, and a best-effort cache write.
type PlaceService struct {
	placeDao  *redisdao.RedisPlaceDAO
	placesApi places.PlacesAPI
	cacheTTL  time.Duration
	hoursZone *time.Location
	logger    *zap.Logger

	// nowFn supplies the clock for open-hours evaluation; overridable in tests.
	nowFn func() time.Time
}

// NewPlaceService constructs a PlaceService. A nil hoursZone falls back to
// UTC, the literal behavior of the system this one replaces.
func NewPlaceService(
	placeDao *redisdao.RedisPlaceDAO,
	placesApi places.PlacesAPI,
	hoursZone *time.Location,
	logger *zap.Logger) *PlaceService {

	if hoursZone == nil {
		hoursZone = time.UTC
	}
	return &PlaceService{
		placeDao:  placeDao,
		placesApi: placesApi,
		cacheTTL:  config.PLACE_CACHE_TTL_MINUTES * time.Minute,
		hoursZone: hoursZone,
		logger:    logger,
		nowFn:     time.Now,
	}
}

// Resolve returns the display record for a place, serving from cache when
// a fresh entry exists. Upstream failures propagate typed and are never
// cached.
func (ps *PlaceService) Resolve(placeID, credential string) (*models.PlaceRecord, error) {
	return ps.resolve(placeID, credential, false)
}

// RefreshPlace re-fetches a place from upstream regardless of cache state,
// rewriting the cache entry on success. Used by the periodic refresher.
func (ps *PlaceService) RefreshPlace(placeID, credential string) (*models.PlaceRecord, error) {
	return ps.resolve(placeID, credential, true)
}

func (ps *PlaceService) resolve(placeID, credential string, skipCache bool) (*models.PlaceRecord, error) {
	if !sanitize.ValidPlaceID(placeID) || !sanitize.ValidCredential(credential) {
		return nil, ErrInvalidInput
	}

	if !skipCache {
		cached, err := ps.placeDao.GetPlace(placeID)
		if err != nil {
			// A broken cache read degrades to a fetch, not a failure.
			ps.logger.Warn("place cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	raw, err := ps.placesApi.FetchPlaceDetails(placeID, credential)
	if err != nil {
		return nil, fmt.Errorf("upstream fetch failed: %w", err)
	}

	record := ps.normalize(placeID, raw)

	if record.CacheEligible() {
		if err := ps.placeDao.SetPlace(placeID, record, ps.cacheTTL); err != nil {
			// Best effort: the record is still returned to the caller.
			ps.logger.Warn("place cache write failed", zap.Error(err))
		}
	}

	return record, nil
}

// normalize maps the raw Places API response onto a PlaceRecord.
func (ps *PlaceService) normalize(placeID string, raw *models.PlaceDetailsResponse) *models.PlaceRecord {
	record := &models.PlaceRecord{
		Name:             models.PlaceholderName,
		FormattedAddress: raw.FormattedAddress,
	}

	if raw.DisplayName != nil && raw.DisplayName.Text != "" {
		record.Name = raw.DisplayName.Text
	}

	record.Phone = raw.NationalPhoneNumber
	if record.Phone == "" {
		record.Phone = raw.InternationalPhoneNumber
	}

	if raw.RegularOpeningHours != nil && len(raw.RegularOpeningHours.Periods) > 0 {
		open := hours.IsOpenNow(raw.RegularOpeningHours, ps.nowFn(), ps.hoursZone)
		record.IsOpenNow = &open
		record.Schedule = raw.RegularOpeningHours
	}

	record.GoogleMapsURL = raw.GoogleMapsURI
	if record.GoogleMapsURL == "" && raw.Location != nil {
		record.GoogleMapsURL = fmt.Sprintf(
			"https://www.google.com/maps/search/?api=1&query=%s&query_place_id=%s",
			url.QueryEscape(record.Name),
			url.QueryEscape(placeID),
		)
	}

	return record
}
