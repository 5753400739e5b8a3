package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastSummaryFor(t *testing.T) {
	forecast := forecastFor("2026-09-02", "2026-09-03")

	assert.Equal(t, "Sunny: 28.0°C (max), 19.0°C (min)", forecast.SummaryFor("2026-09-02"))
	assert.Equal(t, WeatherUnavailable, forecast.SummaryFor("2026-09-10"))
}

func TestWeatherServiceGetForecast(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "Lisbon", r.URL.Query().Get("q"))
		assert.Equal(t, "14", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{
			"forecast": {
				"forecastday": [
					{"date": "2026-09-02", "day": {"maxtemp_c": 27.4, "mintemp_c": 18.9, "condition": {"text": "Partly cloudy"}}}
				]
			}
		}`))
	}))
	defer server.Close()

	svc := &WeatherService{
		httpClient:   server.Client(),
		apiKey:       "test-key",
		baseURL:      server.URL,
		forecastDays: 14,
		cache:        cache.New(time.Hour, time.Hour),
	}

	forecast, err := svc.GetForecast(context.Background(), "Lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Partly cloudy: 27.4°C (max), 18.9°C (min)", forecast.SummaryFor("2026-09-02"))

	// Repeated lookups for the same city come from cache.
	_, err = svc.GetForecast(context.Background(), "Lisbon")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestWeatherServiceDecodeErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	svc := &WeatherService{
		httpClient:   server.Client(),
		apiKey:       "test-key",
		baseURL:      server.URL,
		forecastDays: 14,
		cache:        cache.New(time.Hour, time.Hour),
	}

	_, err := svc.GetForecast(context.Background(), "Lisbon")
	assert.ErrorContains(t, err, "weather decode")
}

func TestWeatherServiceBadStatusPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := &WeatherService{
		httpClient:   server.Client(),
		apiKey:       "test-key",
		baseURL:      server.URL,
		forecastDays: 14,
		cache:        cache.New(time.Hour, time.Hour),
	}

	_, err := svc.GetForecast(context.Background(), "Lisbon")
	assert.ErrorContains(t, err, "weather bad status")
}
