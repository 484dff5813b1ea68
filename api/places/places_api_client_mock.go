package places

import (
	"localscoop-server/models"
)

// PlacesApiClientMock serves a fixed sample place without any network
// access, standing in for the real client in tests.
type PlacesApiClientMock struct {
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock() *PlacesApiClientMock {
	return &PlacesApiClientMock{}
}

// FetchPlaceDetails returns the sample place regardless of the requested
// ID. It still applies the same format validation as the real client.
func (c *PlacesApiClientMock) FetchPlaceDetails(placeID string, credential string) (*models.PlaceDetailsResponse, error) {
	if placeID == "" {
		return nil, ErrInvalidPlaceID
	}

	return &models.PlaceDetailsResponse{
		ID:                  placeID,
		DisplayName:         &models.LocalizedText{Text: "Local Business", LanguageCode: "en"},
		FormattedAddress:    "123 Main St, Springfield",
		NationalPhoneNumber: "(555) 123-4567",
		GoogleMapsURI:       "https://maps.google.com",
		BusinessStatus:      "OPERATIONAL",
		RegularOpeningHours: sampleSchedule(),
		Location:            &models.LatLng{Latitude: 39.78, Longitude: -89.65},
	}, nil
}

// sampleSchedule is open every day of the week, matching the always-open
// sample data the renderer falls back to.
func sampleSchedule() *models.WeeklySchedule {
	schedule := &models.WeeklySchedule{}
	for day := 0; day < 7; day++ {
		schedule.Periods = append(schedule.Periods, models.Period{
			Open: models.TimePoint{Day: day, Hour: 0, Minute: 0},
		})
	}
	return schedule
}
