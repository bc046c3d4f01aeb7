package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/couchcryptid/delivery-area-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodyBytes   = 16 << 10
	publishTimeout = 5 * time.Second
)

// Checker answers serviceability checks. *orchestrator.Orchestrator satisfies it.
type Checker interface {
	sharedobs.ReadinessChecker
	Validate(ctx context.Context, address string, coords *domain.Coordinate) (domain.Verdict, error)
	Area() domain.ServiceArea
}

// Publisher forwards verdict events downstream.
type Publisher interface {
	Publish(ctx context.Context, ev domain.VerdictEvent) error
}

// Server exposes the validation API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	checker    Checker
	publisher  Publisher
	validate   *validator.Validate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server. publisher may be nil, in which case no
// events are emitted.
func NewServer(addr string, checker Checker, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		checker:   checker,
		publisher: publisher,
		validate:  newRequestValidator(),
		logger:    logger,
		metrics:   metrics,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(checker))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/validate", s.handleValidate)
	mux.HandleFunc("GET /v1/service-area", s.handleServiceArea)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type validateRequest struct {
	Address     string              `json:"address"`
	Coordinates *coordinatesRequest `json:"coordinates,omitempty" validate:"omitempty"`
}

type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (r validateRequest) coordinates() *domain.Coordinate {
	if r.Coordinates == nil {
		return nil
	}
	return &domain.Coordinate{Lat: *r.Coordinates.Latitude, Lon: *r.Coordinates.Longitude}
}

type serviceAreaResponse struct {
	Name             string            `json:"name"`
	Center           domain.Coordinate `json:"center"`
	RadiusMiles      float64           `json:"radius_miles"`
	PostcodePrefixes []string          `json:"postcode_prefixes"`
	Description      string            `json:"description"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, describeInvalid(err))
		return
	}

	verdict, err := s.checker.Validate(r.Context(), req.Address, req.coordinates())
	if err != nil {
		s.logger.Debug("validation abandoned", "error", err)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
	s.publish(r.Context(), verdict)
}

func (s *Server) handleServiceArea(w http.ResponseWriter, _ *http.Request) {
	area := s.checker.Area()
	writeJSON(w, http.StatusOK, serviceAreaResponse{
		Name:             area.Name(),
		Center:           area.Center(),
		RadiusMiles:      area.RadiusMiles(),
		PostcodePrefixes: area.Prefixes(),
		Description:      area.Describe(),
	})
}

// publish is best-effort: the response has already been written.
func (s *Server) publish(ctx context.Context, v domain.Verdict) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := domain.NewVerdictEvent(s.checker.Area(), v)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("verdict event publish failed", "event_id", ev.ID, "error", err)
		return
	}
	s.metrics.EventsPublished.Inc()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// newRequestValidator reports fields by their JSON names.
func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeInvalid(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields = append(fields, fmt.Sprintf("%s (%s)", ns, fe.Tag()))
	}
	return "invalid " + strings.Join(fields, ", ")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
