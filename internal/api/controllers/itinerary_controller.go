package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/internal/services"
	mem "roamio/pkg/memcache"
	"roamio/pkg/utils"
)

const itinerarySessionTTL = time.Hour

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	store            mem.ItineraryStore
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, store mem.ItineraryStore) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		store:            store,
	}
}

// CreateItinerary godoc
// @Summary Generate a multi-day travel itinerary
// @Description Assemble three verified itinerary versions for the trip, plus nightlife versions when requested
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Trip parameters"
// @Success 200 {object} response_models.TripItinerarySet
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "destination, country, start_date and end_date are required")
		return
	}

	day, err := i.itineraryService.CreateTravelItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	set := &response_models.TripItinerarySet{
		ID:  uuid.New().String(),
		Day: day,
	}

	if req.IncludeNightlife {
		night, err := i.itineraryService.CreateNightItinerary(c.Request.Context(), req)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		set.Night = night
	}

	i.store.Put(set.ID, set, itinerarySessionTTL)

	utils.RespondSuccess(c, set, "Itinerary generated successfully")
}

// GetItinerary godoc
// @Summary Fetch a previously generated itinerary set
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary set ID"
// @Success 200 {object} response_models.TripItinerarySet
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	set, ok := i.store.Get(id)
	if !ok {
		utils.HandleServiceError(c, utils.ErrItineraryNotFound)
		return
	}

	utils.RespondSuccess(c, set, "Itinerary fetched successfully")
}
