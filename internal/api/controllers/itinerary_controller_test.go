package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	mem "roamio/pkg/memcache"
)

type fakeItineraryService struct {
	day      *response_models.TripItinerary
	night    *response_models.TripItinerary
	err      error
	dayCalls int
}

func (f *fakeItineraryService) CreateTravelItinerary(_ context.Context, _ request_models.ItineraryRequest) (*response_models.TripItinerary, error) {
	f.dayCalls++
	return f.day, f.err
}

func (f *fakeItineraryService) CreateNightItinerary(_ context.Context, _ request_models.ItineraryRequest) (*response_models.TripItinerary, error) {
	return f.night, f.err
}

func newTestRouter(svc *fakeItineraryService, store mem.ItineraryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewItineraryController(svc, store)
	r.POST("/itineraries", controller.CreateItinerary)
	r.GET("/itineraries/:id", controller.GetItinerary)
	return r
}

func validBody() string {
	return `{
		"destination": "Lisbon",
		"country": "Portugal",
		"start_date": "2026-09-02",
		"end_date": "2026-09-03",
		"hotel_name": "Hotel Mundial",
		"mode_of_transport": "transit"
	}`
}

func TestCreateItineraryStoresAndReturnsSet(t *testing.T) {
	svc := &fakeItineraryService{day: &response_models.TripItinerary{Destination: "Lisbon"}}
	store := mem.NewItineraryStore()
	router := newTestRouter(svc, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(validBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Status string                           `json:"status"`
		Data   response_models.TripItinerarySet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "Lisbon", envelope.Data.Day.Destination)
	assert.Nil(t, envelope.Data.Night)

	stored, ok := store.Get(envelope.Data.ID)
	require.True(t, ok)
	assert.Equal(t, "Lisbon", stored.Day.Destination)
}

func TestCreateItineraryIncludesNightlifeWhenRequested(t *testing.T) {
	svc := &fakeItineraryService{
		day:   &response_models.TripItinerary{Destination: "Lisbon"},
		night: &response_models.TripItinerary{Destination: "Lisbon"},
	}
	router := newTestRouter(svc, mem.NewItineraryStore())

	body := strings.Replace(validBody(), `"mode_of_transport": "transit"`,
		`"mode_of_transport": "transit", "include_nightlife": true`, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data response_models.TripItinerarySet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data.Night)
}

func TestCreateItineraryRejectsMissingFields(t *testing.T) {
	svc := &fakeItineraryService{}
	router := newTestRouter(svc, mem.NewItineraryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(`{"destination": "Lisbon"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.dayCalls)
}

func TestGetItineraryNotFound(t *testing.T) {
	router := newTestRouter(&fakeItineraryService{}, mem.NewItineraryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/itineraries/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
