package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/couchcryptid/delivery-area-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Orchestrator runs the two-tier policy used by address entry surfaces:
// postcode first, then geocode-and-distance when the postcode is inconclusive.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	validator *domain.Validator
	geocoder  domain.Geocoder
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock sets the clock used to time geocoder lookups.
func WithClock(c clockwork.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// New creates an Orchestrator. Pass a nil geocoder to disable the fallback.
func New(validator *domain.Validator, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Orchestrator {
	if geocoder != nil {
		metrics.GeocodeEnabled.Set(1)
	} else {
		metrics.GeocodeEnabled.Set(0)
	}
	o := &Orchestrator{
		validator: validator,
		geocoder:  geocoder,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Area returns the service area being checked against.
func (o *Orchestrator) Area() domain.ServiceArea {
	return o.validator.Area()
}

// Validate checks address (and coords, when supplied). If the first verdict is
// negative without any distance evidence, the address is geocoded and checked
// again by distance. The only error returned is ctx's, when it ends during the
// geocoding wait; callers should discard such calls.
func (o *Orchestrator) Validate(ctx context.Context, address string, coords *domain.Coordinate) (domain.Verdict, error) {
	verdict := o.validator.Validate(address, coords)
	if verdict.IsValid || verdict.HasDistance() || o.geocoder == nil {
		o.record(verdict)
		return verdict, nil
	}

	start := o.clock.Now()
	resolved, ok, err := o.geocoder.Resolve(ctx, address)
	o.metrics.GeocodeDuration.Observe(o.clock.Since(start).Seconds())

	switch {
	case err != nil && ctx.Err() != nil:
		o.metrics.GeocodeLookups.WithLabelValues("cancelled").Inc()
		return domain.Verdict{}, err
	case err != nil:
		// Provider failure degrades to the postcode-only verdict.
		o.metrics.GeocodeLookups.WithLabelValues("error").Inc()
		o.logger.Warn("geocode fallback failed", "error", err)
	case !ok:
		o.metrics.GeocodeLookups.WithLabelValues("miss").Inc()
	default:
		o.metrics.GeocodeLookups.WithLabelValues("hit").Inc()
		verdict = o.validator.Validate(address, &resolved)
	}

	o.record(verdict)
	return verdict, nil
}

// CheckReadiness reports whether the orchestrator can serve checks.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if o.validator == nil {
		return errors.New("service area validator is not configured")
	}
	return nil
}

func (o *Orchestrator) record(v domain.Verdict) {
	outcome := "invalid"
	if v.IsValid {
		outcome = "valid"
	}
	o.metrics.Validations.WithLabelValues(string(v.Tier), outcome).Inc()
	o.logger.Debug("address checked",
		"tier", v.Tier,
		"valid", v.IsValid,
		"postcode_area", domain.PostcodeArea(v.Postcode),
	)
}
