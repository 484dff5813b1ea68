package places

import (
	"localscoop-server/models"
)

// PlacesAPI defines the interface for fetching place details from the
// Google Places API (New).
type PlacesAPI interface {
	FetchPlaceDetails(placeID string, credential string) (*models.PlaceDetailsResponse, error)
}
