package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/patrickmn/go-cache"

	"roamio/internal/models/response_models"
	"roamio/pkg/utils"
)

const (
	DurationNotApplicable = "N/A"
	DurationNearby        = "Nearby"
	DurationRouteNotFound = "Route not found"

	// Legs under two minutes collapse to "Nearby" in the day variant.
	nearbyThresholdSeconds = 120
)

type ItineraryVariant int

const (
	DayItinerary ItineraryVariant = iota
	NightItinerary
)

// MatrixLeg is the outcome of one origin/destination duration query.
// ElementStatus is empty when the response carried no usable row or element.
type MatrixLeg struct {
	Status        string
	ElementStatus string
	DurationText  string
	DurationValue int
	HasDuration   bool
}

type DistanceMatrixClient interface {
	Duration(ctx context.Context, origin, destination, mode string, departureEpoch int64) (MatrixLeg, error)
}

type TravelTimeServiceInterface interface {
	AnnotateTravelTimes(ctx context.Context, activities []response_models.VerifiedActivity, date, mode string, variant ItineraryVariant) ([]response_models.VerifiedActivity, error)
}

type TravelTimeService struct {
	matrix DistanceMatrixClient
}

func NewTravelTimeService(matrix DistanceMatrixClient) TravelTimeServiceInterface {
	return &TravelTimeService{matrix: matrix}
}

// AnnotateTravelTimes fills duration_to_next for each consecutive pair of a
// day's activities, departing at the next activity's scheduled time. Non-OK
// matrix statuses become sentinel legs; only transport failures are errors.
// The terminal activity always gets the "N/A" sentinel.
func (s *TravelTimeService) AnnotateTravelTimes(ctx context.Context, activities []response_models.VerifiedActivity, date, mode string, variant ItineraryVariant) ([]response_models.VerifiedActivity, error) {
	if len(activities) == 0 {
		return activities, nil
	}

	for i := 0; i < len(activities)-1; i++ {
		departure, err := utils.DepartureEpoch(date, activities[i+1].Time)
		if err != nil {
			return nil, err
		}

		leg, err := s.matrix.Duration(ctx,
			activities[i].Place.FormattedAddress,
			activities[i+1].Place.FormattedAddress,
			mode, departure)
		if err != nil {
			return nil, fmt.Errorf("distance matrix: %w", err)
		}

		text, value := classifyLeg(leg, variant)
		activities[i].DurationToNext = text
		activities[i].DurationToNextValue = value
		activities[i].DurationToNextClass = durationClass(text, value)
	}

	last := len(activities) - 1
	activities[last].DurationToNext = DurationNotApplicable
	activities[last].DurationToNextValue = 0
	activities[last].DurationToNextClass = "none"

	return activities, nil
}

func classifyLeg(leg MatrixLeg, variant ItineraryVariant) (string, response_models.DurationSeconds) {
	infinite := response_models.DurationSeconds(math.Inf(1))

	if leg.Status != "OK" {
		return "API Error: " + leg.Status, infinite
	}
	if leg.ElementStatus != "OK" || !leg.HasDuration {
		return DurationRouteNotFound, infinite
	}
	if variant == DayItinerary && leg.DurationValue < nearbyThresholdSeconds {
		return DurationNearby, 0
	}
	return leg.DurationText, response_models.DurationSeconds(leg.DurationValue)
}

func durationClass(text string, value response_models.DurationSeconds) string {
	switch {
	case value.IsInfinite():
		return "unknown"
	case text == DurationNearby:
		return "nearby"
	case value < 15*60:
		return "short"
	case value < 45*60:
		return "medium"
	default:
		return "long"
	}
}

// --------- Google Distance Matrix client ---------

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration *struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration,omitempty"`
		} `json:"elements"`
	} `json:"rows"`
}

type GoogleDistanceMatrixClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	cache      *cache.Cache
}

func NewGoogleDistanceMatrixClient() *GoogleDistanceMatrixClient {
	key := os.Getenv("MAPS_API_KEY")
	if key == "" {
		panic("MAPS_API_KEY is empty")
	}
	return &GoogleDistanceMatrixClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     key,
		baseURL:    "https://maps.googleapis.com/maps/api/distancematrix/json",
		cache:      cache.New(time.Hour, 10*time.Minute),
	}
}

// Duration queries one origin/destination pair. Pairs are memoized per mode;
// the cache is advisory only, departure time is not part of the key.
func (c *GoogleDistanceMatrixClient) Duration(ctx context.Context, origin, destination, mode string, departureEpoch int64) (MatrixLeg, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s", mode, origin, destination)
	if hit, ok := c.cache.Get(cacheKey); ok {
		return hit.(MatrixLeg), nil
	}

	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", mode)
	q.Set("departure_time", fmt.Sprintf("%d", departureEpoch))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return MatrixLeg{}, fmt.Errorf("matrix request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MatrixLeg{}, fmt.Errorf("matrix http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return MatrixLeg{}, fmt.Errorf("matrix bad status: %s", resp.Status)
	}

	var payload distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return MatrixLeg{}, fmt.Errorf("matrix decode: %w", err)
	}

	leg := MatrixLeg{Status: payload.Status}
	if len(payload.Rows) > 0 && len(payload.Rows[0].Elements) > 0 {
		element := payload.Rows[0].Elements[0]
		leg.ElementStatus = element.Status
		if element.Duration != nil {
			leg.DurationText = element.Duration.Text
			leg.DurationValue = element.Duration.Value
			leg.HasDuration = true
		}
	}

	// Only cache legs the API fully answered; degraded statuses should be
	// retried on the next pass.
	if leg.Status == "OK" && leg.ElementStatus == "OK" && leg.HasDuration {
		c.cache.Set(cacheKey, leg, cache.DefaultExpiration)
	}

	return leg, nil
}
