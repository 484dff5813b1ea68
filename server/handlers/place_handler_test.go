package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"localscoop-server/api/places"
	"localscoop-server/config"
	redisdao "localscoop-server/dao/redis"
	"localscoop-server/db"
	"localscoop-server/models"
	"localscoop-server/ratelimit"
	services "localscoop-server/service"
)

const (
	testPlaceID    = "ChIJN1t_tDeuEmsRUsoyG83frY4"
	testCredential = "AIzaSyMockCredentialForTests0123456789"
	testToken      = "editor-token-alice"
	testActor      = "alice"
)

// failingPlacesAPI rejects every fetch with a fixed error.
type failingPlacesAPI struct {
	err error
}

func (f *failingPlacesAPI) FetchPlaceDetails(placeID, credential string) (*models.PlaceDetailsResponse, error) {
	return nil, f.err
}

// schedulelessPlacesAPI serves a place that reports no opening hours.
type schedulelessPlacesAPI struct{}

func (schedulelessPlacesAPI) FetchPlaceDetails(placeID, credential string) (*models.PlaceDetailsResponse, error) {
	return &models.PlaceDetailsResponse{
		ID:          placeID,
		DisplayName: &models.LocalizedText{Text: "No Hours Cafe"},
	}, nil
}

func newHandler(t *testing.T, upstream places.PlacesAPI, providers []config.CredentialProvider) *PlaceHandler {
	t.Helper()
	client := db.NewMockRedisClient(context.Background())
	dao := redisdao.NewRedisPlaceDAO(client, "test-salt", zap.NewNop())
	svc := services.NewPlaceService(dao, upstream, nil, zap.NewNop())
	limiter := ratelimit.NewActorLimiter(
		config.RATE_LIMIT_REQUESTS,
		config.RATE_LIMIT_WINDOW_SECONDS*time.Second,
		zap.NewNop())

	return NewPlaceHandler(
		svc,
		limiter,
		providers,
		map[string]string{testToken: testActor},
		nil,
		zap.NewNop())
}

func defaultProviders() []config.CredentialProvider {
	return []config.CredentialProvider{config.ConstantProvider{Value: testCredential}}
}

func doRequest(handler http.HandlerFunc, path, placeID, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req = mux.SetURLVars(req, map[string]string{PLACE_ID_PATH_ARG: placeID})

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestGetPlace_ReturnsResolvedRecord(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var record models.PlaceRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, "Local Business", record.Name)
	assert.Equal(t, "(555) 123-4567", record.Phone)
	require.NotNil(t, record.IsOpenNow)
	assert.True(t, *record.IsOpenNow)
}

func TestGetPlace_RejectsMissingToken(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, "")

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetPlace_RejectsUnknownToken(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, "not-a-real-token")

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetPlace_RejectsInvalidPlaceID(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	tests := []struct {
		name    string
		placeID string
	}{
		{"too short", "short"},
		{"illegal characters", "ChIJ<script>alert(1)</script>"},
		{"too long", strings.Repeat("a", 101)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(h.GetPlace, "/v1/place/"+tt.placeID, tt.placeID, testToken)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "invalid place ID")
		})
	}
}

func TestGetPlace_RejectsWhenNoCredentialConfigured(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(),
		[]config.CredentialProvider{config.ConstantProvider{Value: ""}})

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "API key not configured")
}

func TestGetPlace_RateLimitsPerActor(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	for i := 0; i < config.RATE_LIMIT_REQUESTS; i++ {
		rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)
		require.Equal(t, http.StatusOK, rr.Code, "request %d should pass", i+1)
	}

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")
}

func TestGetPlace_MapsUpstreamErrors(t *testing.T) {
	// Every upstream failure is a flat 400; the response status is ours,
	// only the sanitized message comes from upstream.
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{
			name:     "api error keeps the upstream message",
			err:      &places.APIError{Code: 429, Message: "quota exceeded"},
			wantBody: "quota exceeded",
		},
		{
			name:     "api error with non http code",
			err:      &places.APIError{Code: 13, Message: "internal"},
			wantBody: "internal",
		},
		{
			name:     "transport failure",
			err:      &places.TransportError{Err: http.ErrHandlerTimeout},
			wantBody: "upstream request failed",
		},
		{
			name:     "malformed response",
			err:      places.ErrMalformedResponse,
			wantBody: "invalid API response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, &failingPlacesAPI{err: tt.err}, defaultProviders())

			rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestGetPlace_UpstreamQuotaErrorIsBadRequest(t *testing.T) {
	h := newHandler(t,
		&failingPlacesAPI{err: &places.APIError{Code: 429, Message: "quota exceeded"}},
		defaultProviders())

	rr := doRequest(h.GetPlace, "/v1/place/"+testPlaceID, testPlaceID, testToken)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "quota exceeded"}`, rr.Body.String())
}

func TestRenderPlace_ReturnsMarkup(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.RenderPlace, "/v1/place/"+testPlaceID+"/render", testPlaceID, testToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "localscoop-content")
	assert.Contains(t, rr.Body.String(), "(555) 123-4567")
}

func TestRenderPlace_RequiresAuthorization(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.RenderPlace, "/v1/place/"+testPlaceID+"/render", testPlaceID, "")

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRenderPlace_FallsBackToSampleData(t *testing.T) {
	tests := []struct {
		name    string
		handler func(t *testing.T) *PlaceHandler
		placeID string
	}{
		{
			name: "upstream failure",
			handler: func(t *testing.T) *PlaceHandler {
				return newHandler(t,
					&failingPlacesAPI{err: &places.TransportError{Err: http.ErrHandlerTimeout}},
					defaultProviders())
			},
			placeID: testPlaceID,
		},
		{
			name: "invalid place ID",
			handler: func(t *testing.T) *PlaceHandler {
				return newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())
			},
			placeID: "short",
		},
		{
			name: "no credential configured",
			handler: func(t *testing.T) *PlaceHandler {
				return newHandler(t, places.NewPlacesApiClientMock(),
					[]config.CredentialProvider{config.ConstantProvider{Value: ""}})
			},
			placeID: testPlaceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.handler(t)

			rr := doRequest(h.RenderPlace, "/v1/place/"+tt.placeID+"/render", tt.placeID, testToken)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "(555) 123-4567",
				"sample data should back every failed resolution")
		})
	}
}

func TestRenderPlace_HonorsDisplayOptions(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	path := "/v1/place/" + testPlaceID + "/render?variant=toolbar&show_phone=false"
	rr := doRequest(h.RenderPlace, path, testPlaceID, testToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "localscoop-mobile-content")
	assert.NotContains(t, rr.Body.String(), "tel:")
}

func TestGetPlaceHours_RendersChart(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.GetPlaceHours, "/v1/place/"+testPlaceID+"/hours", testPlaceID, testToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "echarts")
	assert.Contains(t, rr.Body.String(), "Local Business")
	// The body is written in one shot after a successful render, so the
	// page must arrive complete.
	assert.Contains(t, rr.Body.String(), "</html>")
}

func TestGetPlaceHours_NotFoundWithoutSchedule(t *testing.T) {
	h := newHandler(t, schedulelessPlacesAPI{}, defaultProviders())

	rr := doRequest(h.GetPlaceHours, "/v1/place/"+testPlaceID+"/hours", testPlaceID, testToken)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no schedule available")
}

func TestPing(t *testing.T) {
	h := newHandler(t, places.NewPlacesApiClientMock(), defaultProviders())

	rr := doRequest(h.Ping, "/ping", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "pong"}`, rr.Body.String())
}
