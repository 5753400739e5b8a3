package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"roamio/internal/models/response_models"
	"roamio/pkg/utils"
)

const (
	HoursUnavailable = "Opening hours not available"
	HoursClosed      = "Closed"
	hoursOpenAllDay  = "Open 24 hours"
)

// SearchFilter narrows text-search candidates before ranking.
type SearchFilter struct {
	RadiusMeters int
	MinRating    float64
	MinReviews   int
}

func DefaultSearchFilter() SearchFilter {
	return SearchFilter{
		RadiusMeters: 5000,
		MinRating:    2.5,
		MinReviews:   5,
	}
}

// PlaceCandidate is one raw result from the places text search, fields as the
// wire schema delivers them. Nil rating/reviews mean the backend had none.
type PlaceCandidate struct {
	Name             string                                `json:"name"`
	FormattedAddress string                                `json:"formatted_address"`
	Rating           *float64                              `json:"rating,omitempty"`
	UserRatingsTotal *int                                  `json:"user_ratings_total,omitempty"`
	Types            []string                              `json:"types,omitempty"`
	OpeningHours     *response_models.OpeningHoursSchedule `json:"opening_hours,omitempty"`
}

func (c PlaceCandidate) ratingOrZero() float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func (c PlaceCandidate) reviewsOrZero() int {
	if c.UserRatingsTotal == nil {
		return 0
	}
	return *c.UserRatingsTotal
}

type PlacesSearchClient interface {
	TextSearch(ctx context.Context, query, location string, radiusMeters int) ([]PlaceCandidate, error)
}

type PlacesServiceInterface interface {
	ResolvePlace(ctx context.Context, query, location string, filter SearchFilter) (response_models.PlaceRecord, error)
	OpeningHoursForDate(place response_models.PlaceRecord, date time.Time) string
}

type PlacesService struct {
	search PlacesSearchClient
}

func NewPlacesService(search PlacesSearchClient) PlacesServiceInterface {
	return &PlacesService{search: search}
}

// ResolvePlace turns a free-text query into a verified place record. Only
// transport and decode failures are errors; an empty or fully filtered-out
// result set falls back to a deterministic default record.
func (s *PlacesService) ResolvePlace(ctx context.Context, query, location string, filter SearchFilter) (response_models.PlaceRecord, error) {
	candidates, err := s.search.TextSearch(ctx, query, location, filter.RadiusMeters)
	if err != nil {
		return response_models.PlaceRecord{}, fmt.Errorf("places text search: %w", err)
	}

	if len(candidates) == 0 {
		return defaultPlaceRecord(query), nil
	}

	qualified := lo.Filter(candidates, func(c PlaceCandidate, _ int) bool {
		return c.ratingOrZero() >= filter.MinRating && c.reviewsOrZero() >= filter.MinReviews
	})
	if len(qualified) == 0 {
		return defaultPlaceRecord(query), nil
	}

	// Review count dominates, rating breaks ties.
	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].reviewsOrZero() != qualified[j].reviewsOrZero() {
			return qualified[i].reviewsOrZero() > qualified[j].reviewsOrZero()
		}
		return qualified[i].ratingOrZero() > qualified[j].ratingOrZero()
	})
	top := qualified[0]

	// Start from the default shape so any field the search omits stays at
	// its fallback value.
	record := defaultPlaceRecord(query)
	if top.Name != "" {
		record.Name = top.Name
	}
	if top.FormattedAddress != "" {
		record.FormattedAddress = top.FormattedAddress
		record.URL = "https://www.google.com/maps/search/" + url.PathEscape(top.FormattedAddress)
	}
	if top.Rating != nil {
		record.Rating = top.Rating
	}
	if top.UserRatingsTotal != nil {
		record.UserRatingsTotal = top.UserRatingsTotal
	}
	record.Types = top.Types
	record.OpeningHours = top.OpeningHours

	return record, nil
}

// defaultPlaceRecord builds the fallback record by splitting the query on the
// literal " in " separator: left side is the place, right side the address.
func defaultPlaceRecord(query string) response_models.PlaceRecord {
	name := query
	address := query
	if left, right, found := splitPlaceQuery(query); found {
		name = left
		address = right
	}
	return response_models.PlaceRecord{
		Name:             name,
		FormattedAddress: address,
		URL:              "http://maps.google.com/?q=" + url.QueryEscape(name),
	}
}

func splitPlaceQuery(query string) (string, string, bool) {
	return strings.Cut(query, " in ")
}

// OpeningHoursForDate derives the human-readable hours line for one date.
// Day-of-week matching uses the Monday=0 convention of the schedule entries.
func (s *PlacesService) OpeningHoursForDate(place response_models.PlaceRecord, date time.Time) string {
	if place.OpeningHours == nil || len(place.OpeningHours.Periods) == 0 {
		return HoursUnavailable
	}

	dayOfWeek := utils.WeekdayMondayZero(date)
	for _, period := range place.OpeningHours.Periods {
		if period.Open.Day != dayOfWeek {
			continue
		}
		openTime, err := utils.FormatClock12h(period.Open.Time)
		if err != nil {
			return HoursUnavailable
		}
		if period.Close == nil {
			return fmt.Sprintf("%s - %s", openTime, hoursOpenAllDay)
		}
		closeTime, err := utils.FormatClock12h(period.Close.Time)
		if err != nil {
			return HoursUnavailable
		}
		return fmt.Sprintf("%s - %s", openTime, closeTime)
	}

	return HoursClosed
}

// --------- Google Places text-search client ---------

type placesSearchResponse struct {
	Results      []PlaceCandidate `json:"results"`
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

type GooglePlacesClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	cache      *cache.Cache
}

func NewGooglePlacesClient() *GooglePlacesClient {
	key := os.Getenv("MAPS_API_KEY")
	if key == "" {
		panic("MAPS_API_KEY is empty")
	}
	return &GooglePlacesClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     key,
		baseURL:    "https://maps.googleapis.com/maps/api/place/textsearch/json",
		cache:      cache.New(time.Hour, 10*time.Minute),
	}
}

func (c *GooglePlacesClient) TextSearch(ctx context.Context, query, location string, radiusMeters int) ([]PlaceCandidate, error) {
	cacheKey := fmt.Sprintf("%s|%s|%d", query, location, radiusMeters)
	if hit, ok := c.cache.Get(cacheKey); ok {
		return hit.([]PlaceCandidate), nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("location", location)
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("places bad status: %s", resp.Status)
	}

	var payload placesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("places decode: %w", err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places status %s: %s", payload.Status, payload.ErrorMessage)
	}

	c.cache.Set(cacheKey, payload.Results, cache.DefaultExpiration)
	return payload.Results, nil
}
