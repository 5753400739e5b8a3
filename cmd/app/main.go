package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	controllersfx "roamio/cmd/fx/controllers_fx"
	matrixfx "roamio/cmd/fx/distance_matrix_fx"
	itineraryfx "roamio/cmd/fx/itinerary_fx"
	placesfx "roamio/cmd/fx/places_fx"
	suggestionfx "roamio/cmd/fx/suggestion_fx"
	weatherfx "roamio/cmd/fx/weather_fx"
	"roamio/internal/api/controllers"
	"roamio/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		placesfx.Module,
		weatherfx.Module,
		matrixfx.Module,
		suggestionfx.Module,
		itineraryfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(itineraryController *controllers.ItineraryController) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine, itineraryController *controllers.ItineraryController) {
	itineraries := r.Group("/itineraries")
	itineraries.POST("", itineraryController.CreateItinerary)
	itineraries.GET("/:id", itineraryController.GetItinerary)
}
