package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"localscoop-server/api/places"
	"localscoop-server/config"
	"localscoop-server/models"
	"localscoop-server/ratelimit"
	"localscoop-server/render"
	"localscoop-server/sanitize"
	services "localscoop-server/service"
	"localscoop-server/util"
)

const (
	PLACE_ID_PATH_ARG = "place_id"

	VARIANT_QUERY_ARG             = "variant"
	SHOW_OPEN_STATUS_QUERY_ARG    = "show_open_status"
	SHOW_PHONE_QUERY_ARG          = "show_phone"
	SHOW_DIRECTIONS_QUERY_ARG     = "show_directions"
	OPEN_STATUS_COLOR_QUERY_ARG   = "open_status_color"
	CLOSED_STATUS_COLOR_QUERY_ARG = "closed_status_color"
	BACKGROUND_COLOR_QUERY_ARG    = "background_color"
	STATUS_BADGE_SIZE_QUERY_ARG   = "status_badge_size"
	BUTTON_SIZE_QUERY_ARG         = "button_size"
)

// errorEnvelope is the JSON body of every non-2xx response.
type errorEnvelope struct {
	Error string `json:"error"`
}

// PlaceHandler serves the place endpoints. JSON responses return typed
// errors; the render endpoint degrades to sample data instead of failing.
type PlaceHandler struct {
	placeService *services.PlaceService
	limiter      *ratelimit.ActorLimiter
	providers    []config.CredentialProvider

	// editorTokens maps bearer tokens to actor names. Only listed actors
	// may call the place endpoints.
	editorTokens map[string]string

	// sampleRecord is returned by the render endpoint whenever a real
	// record cannot be resolved.
	sampleRecord *models.PlaceRecord

	logger *zap.Logger
}

func NewPlaceHandler(
	placeService *services.PlaceService,
	limiter *ratelimit.ActorLimiter,
	providers []config.CredentialProvider,
	editorTokens map[string]string,
	sampleRecord *models.PlaceRecord,
	logger *zap.Logger) *PlaceHandler {

	if sampleRecord == nil {
		sampleRecord = render.SampleRecord()
	}
	return &PlaceHandler{
		placeService: placeService,
		limiter:      limiter,
		providers:    providers,
		editorTokens: editorTokens,
		sampleRecord: sampleRecord,
		logger:       logger,
	}
}

// GetPlace handles GET /v1/place/{place_id}.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.authorize(r)
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !h.limiter.Allow(actor) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	placeID := mux.Vars(r)[PLACE_ID_PATH_ARG]
	if !sanitize.ValidPlaceIDExternal(placeID) {
		writeError(w, http.StatusBadRequest, "invalid place ID")
		return
	}

	credential := config.ResolveCredential(h.providers)
	if credential == "" {
		writeError(w, http.StatusBadRequest, "API key not configured")
		return
	}

	record, err := h.placeService.Resolve(placeID, credential)
	if err != nil {
		h.logger.Warn("place resolution failed",
			zap.String("place_id", placeID),
			zap.Error(err))
		h.writeResolveError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// RenderPlace handles GET /v1/place/{place_id}/render. Resolution
// failures of any kind fall back to the sample record so the endpoint
// always produces markup for an authorized caller.
func (h *PlaceHandler) RenderPlace(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(r); !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	placeID := mux.Vars(r)[PLACE_ID_PATH_ARG]
	record := h.resolveOrSample(placeID)

	markup, err := render.Render(record, parseDisplayOptions(r.URL.Query()))
	if err != nil {
		h.logger.Error("render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markup))
}

// GetPlaceHours handles GET /v1/place/{place_id}/hours with an HTML
// chart of the place's weekly schedule.
func (h *PlaceHandler) GetPlaceHours(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.authorize(r)
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !h.limiter.Allow(actor) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	placeID := mux.Vars(r)[PLACE_ID_PATH_ARG]
	if !sanitize.ValidPlaceIDExternal(placeID) {
		writeError(w, http.StatusBadRequest, "invalid place ID")
		return
	}

	credential := config.ResolveCredential(h.providers)
	if credential == "" {
		writeError(w, http.StatusBadRequest, "API key not configured")
		return
	}

	record, err := h.placeService.Resolve(placeID, credential)
	if err != nil {
		h.logger.Warn("place resolution failed",
			zap.String("place_id", placeID),
			zap.Error(err))
		h.writeResolveError(w, err)
		return
	}
	if record.Schedule == nil {
		writeError(w, http.StatusNotFound, "no schedule available")
		return
	}

	// Render into a buffer first so a chart failure can still produce an
	// error status instead of a truncated 200 body.
	var buf bytes.Buffer
	if err := util.RenderWeeklyHoursChart(&buf, record.Name, record.Schedule); err != nil {
		h.logger.Error("hours chart rendering failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Ping handles GET /ping.
func (h *PlaceHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// authorize maps the request's bearer token to an actor name.
func (h *PlaceHandler) authorize(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth || token == "" {
		return "", false
	}
	actor, ok := h.editorTokens[token]
	return actor, ok
}

// resolveOrSample resolves a place for the render path, falling back to
// the sample record on any failure.
func (h *PlaceHandler) resolveOrSample(placeID string) *models.PlaceRecord {
	if !sanitize.ValidPlaceIDExternal(placeID) {
		return h.sampleRecord
	}
	credential := config.ResolveCredential(h.providers)
	if credential == "" {
		return h.sampleRecord
	}
	record, err := h.placeService.Resolve(placeID, credential)
	if err != nil {
		h.logger.Warn("render falling back to sample data",
			zap.String("place_id", placeID),
			zap.Error(err))
		return h.sampleRecord
	}
	return record
}

// writeResolveError maps a resolution failure to a response. Every
// upstream failure is a 400 carrying the sanitized message; the upstream
// status code never leaks into our own.
func (h *PlaceHandler) writeResolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "invalid place ID or credential")
		return
	}

	var apiErr *places.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadRequest, apiErr.Message)
		return
	}

	var transportErr *places.TransportError
	if errors.As(err, &transportErr) {
		writeError(w, http.StatusBadRequest, "upstream request failed")
		return
	}
	if errors.Is(err, places.ErrMalformedResponse) {
		writeError(w, http.StatusBadRequest, "invalid API response")
		return
	}

	writeError(w, http.StatusInternalServerError, "internal server error")
}

// parseDisplayOptions reads display options from query args. Missing or
// malformed values keep their defaults; the render package coerces enums
// and colors again before anything reaches markup.
func parseDisplayOptions(vals url.Values) render.DisplayOptions {
	opts := render.DefaultDisplayOptions()

	if v := vals.Get(VARIANT_QUERY_ARG); v != "" {
		opts.Variant = v
	}
	opts.ShowOpenStatus = parseArgBool(vals, SHOW_OPEN_STATUS_QUERY_ARG, opts.ShowOpenStatus)
	opts.ShowPhone = parseArgBool(vals, SHOW_PHONE_QUERY_ARG, opts.ShowPhone)
	opts.ShowDirections = parseArgBool(vals, SHOW_DIRECTIONS_QUERY_ARG, opts.ShowDirections)
	opts.OpenStatusColor = vals.Get(OPEN_STATUS_COLOR_QUERY_ARG)
	opts.ClosedStatusColor = vals.Get(CLOSED_STATUS_COLOR_QUERY_ARG)
	opts.BackgroundColor = vals.Get(BACKGROUND_COLOR_QUERY_ARG)
	if v := vals.Get(STATUS_BADGE_SIZE_QUERY_ARG); v != "" {
		opts.StatusBadgeSize = v
	}
	if v := vals.Get(BUTTON_SIZE_QUERY_ARG); v != "" {
		opts.ButtonSize = v
	}

	return opts
}

func parseArgBool(vals url.Values, name string, def bool) bool {
	s := vals.Get(name)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}
