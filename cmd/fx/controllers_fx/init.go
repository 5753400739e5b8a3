package controllersfx

import (
	"go.uber.org/fx"

	"roamio/internal/api/controllers"
	"roamio/internal/services"
	mem "roamio/pkg/memcache"
)

var Module = fx.Provide(
	provideItineraryStore, provideItineraryController)

func provideItineraryStore() mem.ItineraryStore {
	return mem.NewItineraryStore()
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface, store mem.ItineraryStore) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService, store)
}
