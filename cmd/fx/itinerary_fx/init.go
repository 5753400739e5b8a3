package itineraryfx

import (
	"go.uber.org/fx"

	"roamio/internal/services"
)

var Module = fx.Provide(provideItineraryService)

func provideItineraryService(
	weather services.WeatherServiceInterface,
	suggestions services.SuggestionServiceInterface,
	places services.PlacesServiceInterface,
	travel services.TravelTimeServiceInterface,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(weather, suggestions, places, travel)
}
