package weatherfx

import (
	"go.uber.org/fx"

	"roamio/internal/services"
)

var Module = fx.Provide(provideWeatherService)

func provideWeatherService() services.WeatherServiceInterface {
	return services.NewWeatherService()
}
