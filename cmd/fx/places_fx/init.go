package placesfx

import (
	"go.uber.org/fx"

	"roamio/internal/services"
)

var Module = fx.Provide(
	providePlacesClient, providePlacesService)

func providePlacesClient() services.PlacesSearchClient {
	return services.NewGooglePlacesClient()
}

func providePlacesService(search services.PlacesSearchClient) services.PlacesServiceInterface {
	return services.NewPlacesService(search)
}
