package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Debounce bounds for live address fields. Shorter windows fire on every
// keystroke; longer ones feel unresponsive.
const (
	minDebounce = 400 * time.Millisecond
	maxDebounce = 600 * time.Millisecond
)

// defaultPrefixes mirrors domain.DefaultPostcodePrefixes.
const defaultPrefixes = "KT1,KT2,KT3,KT4,KT5,KT6,KT7,KT8,KT9,SW15,SW19,SW20,TW1,TW2,TW9,TW10,TW11,TW12,SM1,SM2,SM3,SM4,CR4"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Service area definition.
	AreaName         string
	AreaCenterLat    float64
	AreaCenterLon    float64
	AreaRadiusMiles  float64
	PostcodePrefixes []string

	// Fallback geocoder.
	GeocoderEnabled bool
	GeocoderLatency time.Duration

	// Quiet period for debounced caller sessions.
	DebounceInterval time.Duration

	// Verdict event publishing.
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaVerdictTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("SERVICE_AREA_CENTER_LAT", "51.4123")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("SERVICE_AREA_CENTER_LON", "-0.3007")
	if err != nil {
		return nil, err
	}
	radius, err := parseFloat("SERVICE_AREA_RADIUS_MILES", "10")
	if err != nil {
		return nil, err
	}

	geocoderLatency, err := parseDuration("GEOCODER_LATENCY", "300ms")
	if err != nil {
		return nil, err
	}
	debounce, err := parseDuration("DEBOUNCE_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	geocoderEnabled, err := parseBool("GEOCODER_ENABLED", true)
	if err != nil {
		return nil, err
	}
	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AreaName:         strings.TrimSpace(sharedcfg.EnvOrDefault("SERVICE_AREA_NAME", "Kingston upon Thames")),
		AreaCenterLat:    lat,
		AreaCenterLon:    lon,
		AreaRadiusMiles:  radius,
		PostcodePrefixes: splitList(sharedcfg.EnvOrDefault("SERVICE_AREA_POSTCODE_PREFIXES", defaultPrefixes)),

		GeocoderEnabled: geocoderEnabled,
		GeocoderLatency: geocoderLatency,

		DebounceInterval: debounce,

		KafkaEnabled:      kafkaEnabled,
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaVerdictTopic: sharedcfg.EnvOrDefault("KAFKA_VERDICT_TOPIC", "service-area-checks"),
	}

	if cfg.AreaName == "" {
		return nil, errors.New("SERVICE_AREA_NAME is required")
	}
	if !(cfg.AreaCenterLat >= -90 && cfg.AreaCenterLat <= 90) {
		return nil, errors.New("SERVICE_AREA_CENTER_LAT must be within [-90, 90]")
	}
	if !(cfg.AreaCenterLon >= -180 && cfg.AreaCenterLon <= 180) {
		return nil, errors.New("SERVICE_AREA_CENTER_LON must be within [-180, 180]")
	}
	if !(cfg.AreaRadiusMiles > 0) || math.IsInf(cfg.AreaRadiusMiles, 1) {
		return nil, errors.New("SERVICE_AREA_RADIUS_MILES must be positive and finite")
	}
	if len(cfg.PostcodePrefixes) == 0 {
		return nil, errors.New("SERVICE_AREA_POSTCODE_PREFIXES is required")
	}
	if cfg.GeocoderLatency < 0 {
		return nil, errors.New("GEOCODER_LATENCY must not be negative")
	}
	if cfg.DebounceInterval < minDebounce || cfg.DebounceInterval > maxDebounce {
		return nil, fmt.Errorf("DEBOUNCE_INTERVAL must be between %s and %s", minDebounce, maxDebounce)
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaVerdictTopic == "" {
			return nil, errors.New("KAFKA_VERDICT_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parseFloat(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(sharedcfg.EnvOrDefault(key, def)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ServiceArea builds the configured service area.
func (c *Config) ServiceArea() (domain.ServiceArea, error) {
	center := domain.Coordinate{Lat: c.AreaCenterLat, Lon: c.AreaCenterLon}
	return domain.NewServiceArea(c.AreaName, center, c.AreaRadiusMiles, c.PostcodePrefixes)
}
