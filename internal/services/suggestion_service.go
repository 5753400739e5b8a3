package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"roamio/pkg/utils"
)

// DayContext carries everything the generator needs to suggest one day.
// UsedPlaces is advisory for the model; the assembler re-checks it anyway.
type DayContext struct {
	Destination       string
	Country           string
	Date              string
	HotelName         string
	PurposeOfStay     string
	WeatherSummary    string
	DayNumber         int
	TripLength        int
	UsedPlaces        []string
	ModeOfTransport   string
	CustomPreferences string
}

// RawSuggestion is one validated candidate activity out of the model.
type RawSuggestion struct {
	Time           string `json:"time"`
	Activity       string `json:"activity"`
	Place          string `json:"place"`
	TimeInt        int64  `json:"time_int"`
	ApproxDistance string `json:"approx_distance"`
}

// epochSeconds tolerates both numeric and quoted encodings; models flip
// between them freely.
type epochSeconds int64

func (e *epochSeconds) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*e = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = epochSeconds(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("time_int %q: %w", s, err)
	}
	*e = epochSeconds(int64(f))
	return nil
}

type rawSuggestionJSON struct {
	Time           string       `json:"time"`
	Activity       string       `json:"activity"`
	Place          string       `json:"place"`
	TimeInt        epochSeconds `json:"time_int"`
	ApproxDistance string       `json:"approx_distance"`
}

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

type SuggestionServiceInterface interface {
	GenerateDaySuggestions(ctx context.Context, dayCtx DayContext) ([]RawSuggestion, error)
	GenerateNightSuggestions(ctx context.Context, dayCtx DayContext) ([]RawSuggestion, error)
}

type SuggestionService struct {
	ai    utils.TextGeneratorInterface
	cache *cache.Cache
}

func NewSuggestionService(ai utils.TextGeneratorInterface) SuggestionServiceInterface {
	return &SuggestionService{
		ai:    ai,
		cache: cache.New(time.Hour, 10*time.Minute),
	}
}

func (s *SuggestionService) GenerateDaySuggestions(ctx context.Context, dayCtx DayContext) ([]RawSuggestion, error) {
	return s.generate(ctx, buildDayPrompt(dayCtx))
}

func (s *SuggestionService) GenerateNightSuggestions(ctx context.Context, dayCtx DayContext) ([]RawSuggestion, error) {
	return s.generate(ctx, buildNightPrompt(dayCtx))
}

func (s *SuggestionService) generate(ctx context.Context, prompt string) ([]RawSuggestion, error) {
	cacheKey := fmt.Sprintf("%x", sha256.Sum256([]byte(prompt)))[:16]
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.([]RawSuggestion), nil
	}

	content, err := s.ai.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggestion generation: %w", err)
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, suggestions, cache.DefaultExpiration)
	return suggestions, nil
}

// parseSuggestions decodes the model's ordinal-keyed JSON object into a
// validated slice ordered by ordinal. Every entry must carry a well-formed
// time, an activity and a place; anything less fails the whole day rather
// than producing a partial one.
func parseSuggestions(raw string) ([]RawSuggestion, error) {
	content := utils.ExtractJSONObject(raw)
	if content == "" {
		return nil, fmt.Errorf("%w: no JSON object in output", utils.ErrSuggestionParse)
	}

	var entries map[string]rawSuggestionJSON
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSuggestionParse, err)
	}
	if len(entries) == 0 {
		return nil, utils.ErrSuggestionEmpty
	}

	// Ordinal keys define the generation order; the time field is not
	// trustworthy enough to sort by.
	keys := lo.Keys(entries)
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		if aErr == nil && bErr == nil {
			return a < b
		}
		if aErr == nil || bErr == nil {
			return aErr == nil
		}
		return keys[i] < keys[j]
	})

	suggestions := make([]RawSuggestion, 0, len(keys))
	for _, key := range keys {
		entry := entries[key]
		if !clockPattern.MatchString(entry.Time) {
			return nil, fmt.Errorf("%w: entry %s has bad time %q", utils.ErrSuggestionParse, key, entry.Time)
		}
		if strings.TrimSpace(entry.Activity) == "" {
			return nil, fmt.Errorf("%w: entry %s has no activity", utils.ErrSuggestionParse, key)
		}
		if strings.TrimSpace(entry.Place) == "" {
			return nil, fmt.Errorf("%w: entry %s has no place", utils.ErrSuggestionParse, key)
		}
		suggestions = append(suggestions, RawSuggestion{
			Time:           entry.Time,
			Activity:       strings.TrimSpace(entry.Activity),
			Place:          strings.TrimSpace(entry.Place),
			TimeInt:        int64(entry.TimeInt),
			ApproxDistance: entry.ApproxDistance,
		})
	}

	return suggestions, nil
}

func buildDayPrompt(c DayContext) string {
	usedPlaces := strings.Join(sortedCopy(c.UsedPlaces), ", ")

	return fmt.Sprintf(`Create a detailed itinerary for day %d of a %d-day trip to %s, %s.
Date: %s
Staying at: %s
Purpose of stay: %s
Weather forecast: %s
Mode of transportation: %s
Custom preferences: %s

Please provide a full days itinerary with suggested times for each activity. Include local meals, sightseeing, and other relevant activities.
Be specific with place names and try to suggest a variety of activities suitable for the destination, weather, and transportation mode.

Important guidelines:
1. Do not include breakfast or any activities at the hotel.
2. Start the itinerary with the first activity outside the hotel.
3. Do not repeat any place names within the same itinerary. Each day should have unique activities.
4. The following places have already been used in previous days and should not be suggested again: %s
5. Ensure all suggested places are within %s. Do not suggest places in other cities or more than 2 hours away from the city.
6. Consider the mode of transportation when suggesting places. If the mode is walking, keep destinations closer together.
7. Take into account the custom preferences provided by the user.
8. End the itinerary with going back to the place the person is staying at.
9. The person will always be staying at the hotel that is within the same city of destination. If you cannot find a hotel by that name in the same city, assume that the person is staying somewhere within the city centre main station.
10. Aim for a diverse range of activities across the entire trip. If a specific activity or cuisine is requested in custom preferences, include it once or twice during the trip, not every day.
11. Consider the trip length of %d days when distributing activities.
12. If a specific food or cuisine is mentioned in the custom preferences, suggest it for one meal, but vary other meal suggestions, do not suggest the same meal for multiple days in a row.
13. For multi-day trips, try to group activities by area each day to minimize travel time.

%s`,
		c.DayNumber, c.TripLength, c.Destination, c.Country,
		c.Date, c.HotelName, c.PurposeOfStay, c.WeatherSummary,
		c.ModeOfTransport, c.CustomPreferences,
		usedPlaces, c.Destination, c.TripLength,
		suggestionOutputFormat(c.Date))
}

func buildNightPrompt(c DayContext) string {
	usedPlaces := strings.Join(sortedCopy(c.UsedPlaces), ", ")

	return fmt.Sprintf(`Create a daily nightlife itinerary starting for day %d of a %d-day trip to %s, %s.
It should start from 22:00 on %s and end at 04:00 the next day
Date: %s
Staying at: %s
Purpose of stay: %s
Weather forecast: %s
Mode of transportation: %s
Custom preferences: %s

Please provide the nightlife itinerary with suggested times for each place. Be specific with place names and try to suggest special events if any.

Important guidelines:
1. Do not repeat any place names within the same itinerary. Each day should have unique places.
2. Include atleast 1 local pub or bar.
3. The following places have already been used in previous days and should not be suggested again: %s
4. Ensure all suggested places are within %s. Do not suggest places in other cities or more than 2 hours away from the city.
5. Ignore the mode of transportation when suggesting places.
6. Take into account the custom preferences provided by the user.
7. End the itinerary with going back to the place the person is staying at around 03:30 in the morning next day.
8. The person will always be staying at the hotel that is within the same city of destination. If you cannot find a hotel by that name in the same city, assume that the person is staying somewhere within the city centre main station.

%s`,
		c.DayNumber, c.TripLength, c.Destination, c.Country,
		c.Date, c.Date, c.HotelName, c.PurposeOfStay, c.WeatherSummary,
		c.ModeOfTransport, c.CustomPreferences,
		usedPlaces, c.Destination,
		suggestionOutputFormat(c.Date))
}

func suggestionOutputFormat(date string) string {
	return fmt.Sprintf(`Format the output as a JSON object with each entry containing:
- time: suggested time for the activity on date: %s in the local timezone of the place (for example 09:00)
- activity: short description of the activity
- place: specific name of the place to visit
- time_int: the suggested time as an integer in seconds since midnight, January 1, 1970 UTC
- approx_distance: approximate distance in kms from the main train station

Example format:
{
    "1": {"time": "09:30", "activity": "Morning walk", "place": "Specific Park Name", "time_int": 1722562818, "approx_distance": "2.6 kms"},
    "2": {"time": "11:00", "activity": "Visit museum", "place": "Specific Museum Name", "time_int": 1722572818, "approx_distance": "2.6 kms"}
}`, date)
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
