package matrixfx

import (
	"go.uber.org/fx"

	"roamio/internal/services"
)

var Module = fx.Provide(
	provideMatrixClient, provideTravelTimeService)

func provideMatrixClient() services.DistanceMatrixClient {
	return services.NewGoogleDistanceMatrixClient()
}

func provideTravelTimeService(matrix services.DistanceMatrixClient) services.TravelTimeServiceInterface {
	return services.NewTravelTimeService(matrix)
}
