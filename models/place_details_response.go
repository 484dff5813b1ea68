package models

// LocalizedText is the Places API wrapper around translated strings.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng holds geographic coordinates from the Places API.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceDetailsResponse mirrors the subset of the Places API (New) place
// resource selected by the field mask the client sends.
type PlaceDetailsResponse struct {
	ID                       string          `json:"id"`
	DisplayName              *LocalizedText  `json:"displayName,omitempty"`
	FormattedAddress         string          `json:"formattedAddress,omitempty"`
	RegularOpeningHours      *WeeklySchedule `json:"regularOpeningHours,omitempty"`
	BusinessStatus           string          `json:"businessStatus,omitempty"`
	NationalPhoneNumber      string          `json:"nationalPhoneNumber,omitempty"`
	InternationalPhoneNumber string          `json:"internationalPhoneNumber,omitempty"`
	GoogleMapsURI            string          `json:"googleMapsUri,omitempty"`
	Location                 *LatLng         `json:"location,omitempty"`
}

// APIErrorResponse is the error envelope Google APIs return on non-2xx.
type APIErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
