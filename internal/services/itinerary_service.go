package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/pkg/utils"
)

// Three alternative versions per trip, always.
const itineraryVersionCount = 3

type ItineraryServiceInterface interface {
	CreateTravelItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.TripItinerary, error)
	CreateNightItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.TripItinerary, error)
}

type ItineraryService struct {
	weather      WeatherServiceInterface
	suggestions  SuggestionServiceInterface
	places       PlacesServiceInterface
	travel       TravelTimeServiceInterface
	searchFilter SearchFilter
}

func NewItineraryService(
	weather WeatherServiceInterface,
	suggestions SuggestionServiceInterface,
	places PlacesServiceInterface,
	travel TravelTimeServiceInterface,
) ItineraryServiceInterface {
	return &ItineraryService{
		weather:      weather,
		suggestions:  suggestions,
		places:       places,
		travel:       travel,
		searchFilter: DefaultSearchFilter(),
	}
}

// dayOutcome is the per-day result: either a completed plan or a skip with
// its reason. A plan with zero activities is still completed, not skipped.
type dayOutcome struct {
	plan       *response_models.DayPlan
	skipReason string
}

func (o dayOutcome) skipped() bool { return o.plan == nil }

func (s *ItineraryService) CreateTravelItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.TripItinerary, error) {
	return s.assemble(ctx, req, DayItinerary)
}

func (s *ItineraryService) CreateNightItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.TripItinerary, error) {
	return s.assemble(ctx, req, NightItinerary)
}

// assemble drives the whole pipeline: one forecast fetch, then three
// versions of day-by-day suggestion, verification and annotation. The
// used-places set lives exactly as long as this call and gates place reuse
// across every version and day of the output.
func (s *ItineraryService) assemble(ctx context.Context, req request_models.ItineraryRequest, variant ItineraryVariant) (*response_models.TripItinerary, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	tripLength := int(end.Sub(start).Hours()/24) + 1
	if tripLength < 1 {
		return nil, utils.ErrInvalidDateRange
	}

	forecast, err := s.weather.GetForecast(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("weather forecast: %w", err)
	}

	usedPlaces := make(map[string]struct{})
	trip := &response_models.TripItinerary{
		Destination: req.Destination,
		Country:     req.Country,
		Versions:    make([]response_models.ItineraryVersion, 0, itineraryVersionCount),
	}

	for version := 1; version <= itineraryVersionCount; version++ {
		versionUsed := make(map[string]struct{})
		days := make([]response_models.DayPlan, 0, tripLength)

		for dayIndex := 0; dayIndex < tripLength; dayIndex++ {
			date := start.AddDate(0, 0, dayIndex)
			outcome, err := s.assembleDay(ctx, req, variant, date, dayIndex+1, tripLength, forecast, usedPlaces, versionUsed)
			if err != nil {
				return nil, err
			}
			if outcome.skipped() {
				trip.Skipped = append(trip.Skipped, response_models.SkippedDay{
					Version: version,
					Date:    date.Format(utils.DateLayout),
					Reason:  outcome.skipReason,
				})
				continue
			}
			days = append(days, *outcome.plan)
		}

		trip.Versions = append(trip.Versions, response_models.ItineraryVersion{Days: days})
	}

	return trip, nil
}

func (s *ItineraryService) assembleDay(
	ctx context.Context,
	req request_models.ItineraryRequest,
	variant ItineraryVariant,
	date time.Time,
	dayNumber, tripLength int,
	forecast *WeatherForecast,
	usedPlaces, versionUsed map[string]struct{},
) (dayOutcome, error) {
	dateStr := date.Format(utils.DateLayout)
	weatherSummary := forecast.SummaryFor(dateStr)

	dayCtx := DayContext{
		Destination:       req.Destination,
		Country:           req.Country,
		Date:              dateStr,
		HotelName:         req.HotelName,
		PurposeOfStay:     req.PurposeOfStay,
		WeatherSummary:    weatherSummary,
		DayNumber:         dayNumber,
		TripLength:        tripLength,
		UsedPlaces:        lo.Keys(usedPlaces),
		ModeOfTransport:   req.ModeOfTransport,
		CustomPreferences: req.CustomPreferences,
	}

	var suggestions []RawSuggestion
	var err error
	if variant == NightItinerary {
		suggestions, err = s.suggestions.GenerateNightSuggestions(ctx, dayCtx)
	} else {
		suggestions, err = s.suggestions.GenerateDaySuggestions(ctx, dayCtx)
	}
	if err != nil {
		if errors.Is(err, utils.ErrSuggestionParse) || errors.Is(err, utils.ErrSuggestionEmpty) {
			if variant == NightItinerary {
				log.Printf("Error: failed to get a nightlife itinerary for %s: %v", dateStr, err)
			} else {
				log.Printf("Skipping day %s in the itinerary: %v", dateStr, err)
			}
			return dayOutcome{skipReason: err.Error()}, nil
		}
		return dayOutcome{}, err
	}

	location := fmt.Sprintf("%s, %s", req.Destination, req.Country)
	activities := make([]response_models.VerifiedActivity, 0, len(suggestions))

	for _, suggestion := range suggestions {
		// The model is asked to avoid used places but does not always
		// comply; duplicates are dropped here.
		if _, used := usedPlaces[suggestion.Place]; used {
			continue
		}

		query := fmt.Sprintf("%s in %s, %s", suggestion.Place, req.Destination, req.Country)
		place, err := s.places.ResolvePlace(ctx, query, location, s.searchFilter)
		if err != nil {
			return dayOutcome{}, err
		}

		activities = append(activities, response_models.VerifiedActivity{
			Time:           suggestion.Time,
			Activity:       suggestion.Activity,
			Place:          place,
			OpeningHours:   s.places.OpeningHoursForDate(place, date),
			TimeInt:        suggestion.TimeInt,
			ApproxDistance: suggestion.ApproxDistance,
		})
		usedPlaces[suggestion.Place] = struct{}{}
		versionUsed[suggestion.Place] = struct{}{}
	}

	if len(activities) > 0 {
		activities, err = s.travel.AnnotateTravelTimes(ctx, activities, dateStr, req.ModeOfTransport, variant)
		if err != nil {
			return dayOutcome{}, err
		}
	}

	return dayOutcome{plan: &response_models.DayPlan{
		Date:       dateStr,
		Weather:    weatherSummary,
		Activities: activities,
	}}, nil
}
