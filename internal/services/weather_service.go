package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
)

const WeatherUnavailable = "Weather data not available"

type WeatherCondition struct {
	Text string `json:"text"`
}

type WeatherDaySummary struct {
	MaxTempC  float64          `json:"maxtemp_c"`
	MinTempC  float64          `json:"mintemp_c"`
	Condition WeatherCondition `json:"condition"`
}

type ForecastDay struct {
	Date string            `json:"date"`
	Day  WeatherDaySummary `json:"day"`
}

type WeatherForecast struct {
	Forecast struct {
		ForecastDays []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

// SummaryFor renders the one-line weather summary for a date, or the
// unavailable sentinel when the forecast does not cover it.
func (f *WeatherForecast) SummaryFor(date string) string {
	for _, day := range f.Forecast.ForecastDays {
		if day.Date == date {
			return fmt.Sprintf("%s: %.1f°C (max), %.1f°C (min)",
				day.Day.Condition.Text, day.Day.MaxTempC, day.Day.MinTempC)
		}
	}
	return WeatherUnavailable
}

type WeatherServiceInterface interface {
	GetForecast(ctx context.Context, city string) (*WeatherForecast, error)
}

// WeatherService wraps the weatherapi.com forecast endpoint. Transport and
// decode failures propagate; there is no degraded fallback here.
type WeatherService struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	forecastDays int
	cache        *cache.Cache
}

func NewWeatherService() WeatherServiceInterface {
	key := os.Getenv("WEATHER_API_KEY")
	if key == "" {
		panic("WEATHER_API_KEY is empty")
	}
	return &WeatherService{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		apiKey:       key,
		baseURL:      "https://api.weatherapi.com/v1/forecast.json",
		forecastDays: 14,
		cache:        cache.New(time.Hour, 10*time.Minute),
	}
}

func (s *WeatherService) GetForecast(ctx context.Context, city string) (*WeatherForecast, error) {
	if hit, ok := s.cache.Get(city); ok {
		return hit.(*WeatherForecast), nil
	}

	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("q", city)
	q.Set("days", fmt.Sprintf("%d", s.forecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("weather bad status: %s", resp.Status)
	}

	var forecast WeatherForecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}

	s.cache.Set(city, &forecast, cache.DefaultExpiration)
	return &forecast, nil
}
