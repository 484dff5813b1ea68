package places

import (
	"encoding/json"
	"fmt"
	"net/url"

	"localscoop-server/api"
	"localscoop-server/models"
	"localscoop-server/sanitize"
)

const PLACES_ENDPOINT_BASE = "https://places.googleapis.com/v1"

// PLACES_FIELD_MASK restricts the response to exactly the fields the
// resolver consumes, minimizing payload and exposure.
const PLACES_FIELD_MASK = "id,displayName,formattedAddress,regularOpeningHours,businessStatus," +
	"nationalPhoneNumber,internationalPhoneNumber,googleMapsUri,location"

const USER_AGENT = "LocalScoop/0.1.0"

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
	}
}

// FetchPlaceDetails issues a single GET for the place details resource.
// The credential travels in a request header, never in the URL. The place
// ID is re-validated here regardless of what the caller did.
func (c *PlacesApiClient) FetchPlaceDetails(placeID string, credential string) (*models.PlaceDetailsResponse, error) {
	if !sanitize.ValidPlaceID(placeID) {
		return nil, ErrInvalidPlaceID
	}

	headers := map[string]string{
		"X-Goog-Api-Key":   credential,
		"X-Goog-FieldMask": PLACES_FIELD_MASK,
		"User-Agent":       USER_AGENT,
	}

	res, err := c.Get("/places/"+url.PathEscape(placeID), headers)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, parseAPIError(res)
	}

	var details models.PlaceDetailsResponse
	if err := json.Unmarshal(res.Body, &details); err != nil {
		return nil, ErrMalformedResponse
	}
	if details == (models.PlaceDetailsResponse{}) {
		return nil, ErrMalformedResponse
	}
	return &details, nil
}

// parseAPIError extracts the upstream error message from a non-2xx body,
// falling back to a generic message when the body is malformed.
func parseAPIError(res *api.RawResponse) *APIError {
	message := fmt.Sprintf("API request failed with code %d", res.StatusCode)

	var envelope models.APIErrorResponse
	if err := json.Unmarshal(res.Body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	return &APIError{Code: res.StatusCode, Message: message}
}
