package locality

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wimbledon = domain.Coordinate{Lat: 51.4214, Lon: -0.2064}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// instant returns a geocoder with no simulated latency.
func instant(opts ...Option) *Geocoder {
	return New(DefaultGazetteer(), discardLogger(), append([]Option{WithLatency(0)}, opts...)...)
}

func assertNear(t *testing.T, want, got domain.Coordinate, bound float64) {
	t.Helper()
	assert.InDelta(t, want.Lat, got.Lat, bound, "latitude")
	assert.InDelta(t, want.Lon, got.Lon, bound, "longitude")
}

type resolveResult struct {
	coord domain.Coordinate
	ok    bool
	err   error
}

func TestGeocoder_Match(t *testing.T) {
	g := instant()

	tests := []struct {
		name     string
		text     string
		wantName string
		wantOK   bool
	}{
		{"locality anywhere in text", "somewhere in Wimbledon", "Wimbledon", true},
		{"case insensitive", "12 HIGH ST, SURBITON", "Surbiton", true},
		{"accents folded", "Flat 3, Twíckenham Road", "Twickenham", true},
		{"multi word name", "near   new   malden station", "New Malden", true},
		{"specific before general", "Hampton Wick pier", "Hampton Wick", true},
		{"gazetteer order wins", "Kingston Road, Wimbledon", "Kingston", true},
		{"postcode area fallback", "7 Nowhere Lane, SM2 5AA", "SM2", true},
		{"locality beats postcode", "Putney, KT1 1AA", "Putney", true},
		{"unknown postcode area", "1 Main St, ZE1 0AA", "", false},
		{"whole words only", "Southampton SO14 7DU", "", false},
		{"name followed by punctuation", "The Broadway, Wimbledon, London", "Wimbledon", true},
		{"name inside longer word skipped", "Southampton Row, Hampton Court", "Hampton", true},
		{"no match", "somewhere else entirely", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, _, ok := g.Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestGeocoder_Resolve_PostcodeFilter(t *testing.T) {
	area := domain.DefaultServiceArea()
	g := instant(WithJitter(0), WithPostcodeFilter(area.IsAcceptedPrefix))

	tests := []struct {
		name   string
		text   string
		wantOK bool
	}{
		{"rejected area centroid", "14 Acacia Ave, SW1A 1AA", false},
		{"rejected area beats locality name", "Wimbledon Road, GU1 3AA", false},
		{"accepted area", "7 Nowhere Lane, SM2 5AA", true},
		{"no postcode", "somewhere in Wimbledon", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := g.Resolve(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("hampton", "hampton"))
	assert.True(t, containsWord("southampton, hampton", "hampton"))
	assert.True(t, containsWord("st. margaret's", "st. margaret's"))
	assert.False(t, containsWord("southampton", "hampton"))
	assert.False(t, containsWord("hamptons", "hampton"))
	assert.False(t, containsWord("ham", "hampton"))
}

func TestGeocoder_Resolve_JitterBound(t *testing.T) {
	g := instant(WithRand(rand.New(rand.NewPCG(1, 2))))

	// Jitter is random; every call must stay within the documented bound.
	for range 200 {
		c, ok, err := g.Resolve(context.Background(), "somewhere in Wimbledon")
		require.NoError(t, err)
		require.True(t, ok)
		assertNear(t, wimbledon, c, DefaultJitter)
	}
}

func TestGeocoder_Resolve_NoJitter(t *testing.T) {
	g := instant(WithJitter(0))

	c, ok, err := g.Resolve(context.Background(), "Wimbledon")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wimbledon, c)
}

func TestGeocoder_Resolve_Miss(t *testing.T) {
	g := instant()

	c, ok, err := g.Resolve(context.Background(), "the moon")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.Coordinate{}, c)
}

func TestGeocoder_Resolve_WaitsForLatency(t *testing.T) {
	fc := clockwork.NewFakeClock()
	g := New(DefaultGazetteer(), discardLogger(), WithClock(fc), WithLatency(300*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan resolveResult, 1)
	go func() {
		c, ok, err := g.Resolve(ctx, "somewhere in Wimbledon")
		done <- resolveResult{c, ok, err}
	}()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(299 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("resolve returned before latency elapsed")
	default:
	}

	fc.Advance(time.Millisecond)
	select {
	case r := <-done:
		require.NoError(t, r.err)
		require.True(t, r.ok)
		assertNear(t, wimbledon, r.coord, DefaultJitter)
	case <-ctx.Done():
		t.Fatal("resolve did not return after latency elapsed")
	}
}

func TestGeocoder_Resolve_Cancelled(t *testing.T) {
	fc := clockwork.NewFakeClock()
	g := New(DefaultGazetteer(), discardLogger(), WithClock(fc))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan resolveResult, 1)
	go func() {
		c, ok, err := g.Resolve(ctx, "Wimbledon")
		done <- resolveResult{c, ok, err}
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case r := <-done:
		require.ErrorIs(t, r.err, context.Canceled)
		assert.False(t, r.ok)
	case <-waitCtx.Done():
		t.Fatal("resolve did not observe cancellation")
	}
}

func TestGeocoder_Resolve_AlreadyCancelled(t *testing.T) {
	g := instant()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := g.Resolve(ctx, "Wimbledon")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestNew_CopiesGazetteer(t *testing.T) {
	gz := Gazetteer{
		Localities: []Locality{{Name: "Wimbledon", Center: wimbledon}},
		Areas:      map[string]domain.Coordinate{"sw19": wimbledon},
	}
	g := New(gz, discardLogger(), WithLatency(0), WithJitter(0))

	gz.Localities[0].Name = "Elsewhere"
	delete(gz.Areas, "sw19")

	name, _, ok := g.Match("Wimbledon")
	assert.True(t, ok)
	assert.Equal(t, "Wimbledon", name)

	area, _, ok := g.Match("SW19 5AE")
	assert.True(t, ok)
	assert.Equal(t, "SW19", area)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "st. margaret's", fold("  St. Margarét's "))
	assert.Equal(t, "new malden", fold("NEW\tMALDEN"))
}
