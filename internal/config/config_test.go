package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, "Kingston upon Thames", cfg.AreaName)
	assert.Equal(t, 51.4123, cfg.AreaCenterLat)
	assert.Equal(t, -0.3007, cfg.AreaCenterLon)
	assert.Equal(t, 10.0, cfg.AreaRadiusMiles)
	assert.Len(t, cfg.PostcodePrefixes, 23)
	assert.Equal(t, "KT1", cfg.PostcodePrefixes[0])

	assert.True(t, cfg.GeocoderEnabled)
	assert.Equal(t, 300*time.Millisecond, cfg.GeocoderLatency)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval)

	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "service-area-checks", cfg.KafkaVerdictTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SERVICE_AREA_NAME", "Surbiton")
	t.Setenv("SERVICE_AREA_CENTER_LAT", "51.3937")
	t.Setenv("SERVICE_AREA_CENTER_LON", "-0.3033")
	t.Setenv("SERVICE_AREA_RADIUS_MILES", "3.5")
	t.Setenv("SERVICE_AREA_POSTCODE_PREFIXES", "KT5, KT6,,kt7 ")
	t.Setenv("GEOCODER_ENABLED", "false")
	t.Setenv("GEOCODER_LATENCY", "0s")
	t.Setenv("DEBOUNCE_INTERVAL", "400ms")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_VERDICT_TOPIC", "checks")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "Surbiton", cfg.AreaName)
	assert.Equal(t, 51.3937, cfg.AreaCenterLat)
	assert.Equal(t, -0.3033, cfg.AreaCenterLon)
	assert.Equal(t, 3.5, cfg.AreaRadiusMiles)
	assert.Equal(t, []string{"KT5", "KT6", "kt7"}, cfg.PostcodePrefixes)
	assert.False(t, cfg.GeocoderEnabled)
	assert.Equal(t, time.Duration(0), cfg.GeocoderLatency)
	assert.Equal(t, 400*time.Millisecond, cfg.DebounceInterval)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "checks", cfg.KafkaVerdictTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SERVICE_AREA_CENTER_LAT", "north"},
		{"SERVICE_AREA_CENTER_LAT", "91"},
		{"SERVICE_AREA_CENTER_LON", "-181"},
		{"SERVICE_AREA_RADIUS_MILES", "0"},
		{"SERVICE_AREA_RADIUS_MILES", "-2"},
		{"SERVICE_AREA_RADIUS_MILES", "Inf"},
		{"SERVICE_AREA_RADIUS_MILES", "NaN"},
		{"SERVICE_AREA_CENTER_LAT", "NaN"},
		{"SERVICE_AREA_POSTCODE_PREFIXES", " , "},
		{"GEOCODER_ENABLED", "maybe"},
		{"GEOCODER_LATENCY", "soon"},
		{"GEOCODER_LATENCY", "-1s"},
		{"DEBOUNCE_INTERVAL", "100ms"},
		{"DEBOUNCE_INTERVAL", "2s"},
		{"KAFKA_ENABLED", "yes please"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ,"))
	assert.Nil(t, splitList(""))
}

func TestConfig_ServiceArea(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	area, err := cfg.ServiceArea()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceArea(), area)
}

func TestConfig_ServiceAreaRejectsUnusablePrefixes(t *testing.T) {
	cfg := &Config{
		AreaName:         "Kingston upon Thames",
		AreaCenterLat:    51.4123,
		AreaCenterLon:    -0.3007,
		AreaRadiusMiles:  10,
		PostcodePrefixes: []string{" "},
	}

	_, err := cfg.ServiceArea()
	assert.Error(t, err)
}
