package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/motorlane/adengine/internal/endpoint"
	"github.com/motorlane/adengine/internal/identity"
	"github.com/motorlane/adengine/internal/models"
)

// HandlerConfig tunes route-level behavior
type HandlerConfig struct {
	// RequireModeratorRole rejects approve/reject actions from non-admin
	// callers at the transport edge, before the service runs.
	RequireModeratorRole bool
}

// NewHTTPHandler creates HTTP handlers for the ad engine
func NewHTTPHandler(endpoints endpoint.AdEndpoints, cfg HandlerConfig, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
	}

	listAdsHandler := httptransport.NewServer(
		endpoints.ListAdsEndpoint,
		decodeListAdsRequest,
		encodeListAdsResponse,
		options...,
	)

	compareHandler := httptransport.NewServer(
		endpoints.CompareEndpoint,
		decodeCompareRequest,
		encodeCompareResponse,
		options...,
	)

	lifecycleHandler := httptransport.NewServer(
		endpoints.ApplyLifecycleEndpoint,
		makeDecodeLifecycleRequest(cfg),
		encodeLifecycleResponse,
		options...,
	)

	promotionHandler := httptransport.NewServer(
		endpoints.SetPromotionEndpoint,
		decodePromotionRequest,
		encodePromotionResponse,
		options...,
	)

	r := mux.NewRouter()

	// Compare must be registered before the {id} routes so "compare" is
	// never read as an ad id.
	r.Handle("/v1/ads/compare", compareHandler).Methods("GET")
	r.Handle("/v1/ads", listAdsHandler).Methods("GET")
	r.Handle("/v1/ads/{id}/lifecycle", lifecycleHandler).Methods("POST")
	r.Handle("/v1/ads/{id}/promotion", promotionHandler).Methods("POST")

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")

	return r
}

// decodeListAdsRequest decodes HTTP request to ListAdsRequest
func decodeListAdsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	listingType, err := models.ParseListingType(query.Get("type"))
	if err != nil {
		return nil, err
	}

	req := endpoint.ListAdsRequest{
		Actor: identity.ActorFromContext(ctx),
		Params: models.ListingParams{
			FilterByUser: parseBoolParam(query.Get("filter_by_user")),
			SearchText:   strings.TrimSpace(query.Get("search")),
			ListingType:  string(listingType),
			Page:         parseIntParam(query.Get("page")),
			Limit:        parseIntParam(query.Get("limit")),
		},
	}

	return req, nil
}

// encodeListAdsResponse encodes ListAdsResponse to HTTP response
func encodeListAdsResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.ListAdsResponse)

	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp.Listing)
}

// decodeCompareRequest decodes HTTP request to CompareRequest
func decodeCompareRequest(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	firstID := query.Get("first")
	secondID := query.Get("second")
	if firstID == "" || secondID == "" {
		return nil, errors.New("missing first or second param")
	}

	return endpoint.CompareRequest{
		FirstID:  firstID,
		SecondID: secondID,
	}, nil
}

// encodeCompareResponse encodes CompareResponse to HTTP response
func encodeCompareResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.CompareResponse)

	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp.Comparison)
}

// lifecycleBody is the JSON body of a lifecycle action request
type lifecycleBody struct {
	Action               string `json:"action"`
	RejectionDescription string `json:"rejection_description"`
}

// makeDecodeLifecycleRequest decodes HTTP request to ApplyLifecycleRequest
func makeDecodeLifecycleRequest(cfg HandlerConfig) httptransport.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		var body lifecycleBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, errors.New("invalid request body")
		}

		action, err := models.ParseAction(body.Action)
		if err != nil {
			return nil, err
		}

		actor := identity.ActorFromContext(ctx)
		if cfg.RequireModeratorRole && isModeratorAction(action) && !actor.IsAdmin() {
			return nil, models.ErrPermissionDenied
		}

		return endpoint.ApplyLifecycleRequest{
			AdID:   mux.Vars(r)["id"],
			Action: action,
			Actor:  actor,
			Payload: models.TransitionPayload{
				RejectionDescription: body.RejectionDescription,
			},
		}, nil
	}
}

// isModeratorAction reports whether an action is reserved for moderators
func isModeratorAction(action models.Action) bool {
	return action == models.ActionApprove || action == models.ActionReject
}

// encodeLifecycleResponse encodes ApplyLifecycleResponse to HTTP response
func encodeLifecycleResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.ApplyLifecycleResponse)

	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp.Ad)
}

// promotionBody is the JSON body of a promotion change request
type promotionBody struct {
	Tier     string `json:"tier"`
	Duration string `json:"duration"`
}

// decodePromotionRequest decodes HTTP request to SetPromotionRequest
func decodePromotionRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	var body promotionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.New("invalid request body")
	}

	tier, err := models.ParsePromotionTier(body.Tier)
	if err != nil {
		return nil, err
	}

	return endpoint.SetPromotionRequest{
		AdID:     mux.Vars(r)["id"],
		Actor:    identity.ActorFromContext(ctx),
		Tier:     tier,
		Duration: models.PromotionDuration(body.Duration),
	}, nil
}

// encodePromotionResponse encodes SetPromotionResponse to HTTP response
func encodePromotionResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.SetPromotionResponse)

	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp.Ad)
}

// encodeError maps domain errors onto HTTP status codes
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, models.ErrAuthenticationRequired):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, models.ErrInvalidTransition):
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, models.ErrInvalidArgument):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case err.Error() == "invalid request body",
		err.Error() == "missing first or second param":
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorResponse := models.NewErrorResponse(err.Error())
	json.NewEncoder(w).Encode(errorResponse)
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "adengine",
		"version": "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseBoolParam reads a query flag, treating bad input as false
func parseBoolParam(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

// parseIntParam reads a numeric query param, treating bad input as zero
// so the service applies its defaults.
func parseIntParam(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
