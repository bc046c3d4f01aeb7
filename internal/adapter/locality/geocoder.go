package locality

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	// DefaultLatency stands in for a provider round trip.
	DefaultLatency = 300 * time.Millisecond

	// DefaultJitter is the maximum offset, in degrees, applied to each axis so
	// addresses in one locality do not all resolve to the same point.
	DefaultJitter = 0.005
)

// Geocoder implements domain.Geocoder against a fixed Gazetteer. Results are
// approximate: a hit returns the locality center plus a small random offset.
type Geocoder struct {
	localities []Locality
	folded     []string
	areas      map[string]domain.Coordinate

	clock   clockwork.Clock
	latency time.Duration
	jitter  float64
	logger  *slog.Logger

	// accept, when set, rejects text carrying a postcode outside the service
	// area so a place name or area centroid cannot override it.
	accept func(postcodeArea string) bool

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithClock sets the clock used to wait out the simulated latency.
func WithClock(c clockwork.Clock) Option {
	return func(g *Geocoder) { g.clock = c }
}

// WithLatency sets the simulated lookup latency. Zero or negative disables it.
func WithLatency(d time.Duration) Option {
	return func(g *Geocoder) { g.latency = d }
}

// WithJitter sets the maximum per-axis offset in degrees. Zero disables it.
func WithJitter(deg float64) Option {
	return func(g *Geocoder) { g.jitter = deg }
}

// WithPostcodeFilter makes Resolve miss on any text whose postcode area is
// not accepted. Wire it to ServiceArea.IsAcceptedPrefix.
func WithPostcodeFilter(accept func(postcodeArea string) bool) Option {
	return func(g *Geocoder) { g.accept = accept }
}

// WithRand sets the random source used for jitter.
func WithRand(r *rand.Rand) Option {
	return func(g *Geocoder) { g.rng = r }
}

// New creates a Geocoder over gz. The gazetteer is copied; later changes to the
// caller's slices or map are not observed.
func New(gz Gazetteer, logger *slog.Logger, opts ...Option) *Geocoder {
	g := &Geocoder{
		localities: make([]Locality, len(gz.Localities)),
		folded:     make([]string, len(gz.Localities)),
		areas:      make(map[string]domain.Coordinate, len(gz.Areas)),
		clock:      clockwork.NewRealClock(),
		latency:    DefaultLatency,
		jitter:     DefaultJitter,
		logger:     logger,
	}
	copy(g.localities, gz.Localities)
	for i, l := range g.localities {
		g.folded[i] = fold(l.Name)
	}
	for area, c := range gz.Areas {
		g.areas[strings.ToUpper(area)] = c
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Resolve waits out the simulated latency, then matches addressText against
// locality names and, failing that, its postcode area. Cancelling ctx aborts
// the wait and returns ctx.Err().
func (g *Geocoder) Resolve(ctx context.Context, addressText string) (domain.Coordinate, bool, error) {
	if !sleepWithContext(ctx, g.clock, g.latency) {
		return domain.Coordinate{}, false, ctx.Err()
	}

	if area, rejected := g.rejectedArea(addressText); rejected {
		g.logger.Debug("postcode area outside service area", "postcode_area", area)
		return domain.Coordinate{}, false, nil
	}

	name, center, ok := g.Match(addressText)
	if !ok {
		g.logger.Debug("no locality match", "address_len", len(addressText))
		return domain.Coordinate{}, false, nil
	}

	g.logger.Debug("locality matched", "locality", name)
	return g.perturb(center), true, nil
}

func (g *Geocoder) rejectedArea(addressText string) (string, bool) {
	if g.accept == nil {
		return "", false
	}
	postcode, ok := domain.ExtractPostcode(addressText)
	if !ok {
		return "", false
	}
	area := domain.PostcodeArea(postcode)
	return area, !g.accept(area)
}

// Match returns the gazetteer entry for addressText without latency, jitter or
// the postcode filter. Locality names are tried first, in gazetteer order, and
// must appear as whole words; then the postcode area.
func (g *Geocoder) Match(addressText string) (string, domain.Coordinate, bool) {
	text := fold(addressText)
	if text != "" {
		for i, name := range g.folded {
			if name != "" && containsWord(text, name) {
				return g.localities[i].Name, g.localities[i].Center, true
			}
		}
	}

	postcode, ok := domain.ExtractPostcode(addressText)
	if !ok {
		return "", domain.Coordinate{}, false
	}
	area := domain.PostcodeArea(postcode)
	center, ok := g.areas[area]
	if !ok {
		return "", domain.Coordinate{}, false
	}
	return area, center, true
}

func (g *Geocoder) perturb(c domain.Coordinate) domain.Coordinate {
	if g.jitter <= 0 {
		return c
	}
	g.mu.Lock()
	dLat := (g.rng.Float64()*2 - 1) * g.jitter
	dLon := (g.rng.Float64()*2 - 1) * g.jitter
	g.mu.Unlock()
	return domain.Coordinate{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
}

// sleepWithContext blocks for d on clock unless ctx is cancelled first.
// Returns false if ctx ended before the wait completed.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
