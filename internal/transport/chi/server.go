// Package chi implements the HTTP transport for the Atlas query API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/geo"
	"github.com/kailas-cloud/atlas/internal/domain/query"
	answeruc "github.com/kailas-cloud/atlas/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/atlas/internal/usecase/health"
)

// errorResponse is the JSON error body for requests that never reach the
// answer pipeline (bad input, auth). Pipeline failures return a fallback
// AtlasResponse body instead, so the map UI never special-cases errors.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server exposes the answer pipeline over HTTP.
type Server struct {
	answers *answeruc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(answers *answeruc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{answers: answers, health: health, logger: logger}
}

// queryBody is the inbound POST /v1/query shape. The tenant id never
// comes from here; the auth middleware resolves it from the API key.
type queryBody struct {
	QueryText    string     `json:"queryText"`
	UserLocation *coordBody `json:"userLocation,omitempty"`
	Viewport     *bboxBody  `json:"viewport,omitempty"`
}

type coordBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type bboxBody struct {
	SouthWest coordBody `json:"southWest"`
	NorthEast coordBody `json:"northEast"`
}

// HandleQuery handles POST /v1/query.
func (s *Server) HandleQuery(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no tenant resolved for request")
		return
	}

	var body queryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	// Blank queryText is not short-circuited here: the pipeline returns
	// its fallback body with ErrEmptyQuery, so even the 400 stays
	// renderable by the map UI.
	req := query.New(body.QueryText, tenantID)

	if body.UserLocation != nil {
		loc := geo.Coordinate{Lat: body.UserLocation.Lat, Lng: body.UserLocation.Lng}
		if !loc.Valid() {
			writeError(w, http.StatusBadRequest, "validation_failed", "userLocation is out of range")
			return
		}
		req = req.WithUserLocation(loc)
	}
	if body.Viewport != nil {
		box := geo.BoundingBox{
			SouthWest: geo.Coordinate{Lat: body.Viewport.SouthWest.Lat, Lng: body.Viewport.SouthWest.Lng},
			NorthEast: geo.Coordinate{Lat: body.Viewport.NorthEast.Lat, Lng: body.Viewport.NorthEast.Lng},
		}
		if !box.Valid() {
			writeError(w, http.StatusBadRequest, "validation_failed", "viewport is out of range")
			return
		}
		req = req.WithViewport(box)
	}

	resp, err := s.answers.Answer(r.Context(), req)
	writeJSON(w, statusForAnswer(err), resp)
}

// statusForAnswer maps pipeline sentinels to HTTP status codes. Every
// branch still carries a usable AtlasResponse body.
func statusForAnswer(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		// fetch errors, malformed model output, unexpected faults
		return http.StatusInternalServerError
	}
}

// healthBody is the GET /health response shape.
type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HandleHealth handles GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}
	writeJSON(w, httpStatus, healthBody{Status: string(report.Status), Checks: checks})
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
