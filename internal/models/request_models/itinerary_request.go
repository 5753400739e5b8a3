package request_models

type ItineraryRequest struct {
	Destination       string `json:"destination" binding:"required"`
	Country           string `json:"country" binding:"required"`
	StartDate         string `json:"start_date" binding:"required"`
	EndDate           string `json:"end_date" binding:"required"`
	HotelName         string `json:"hotel_name"`
	PurposeOfStay     string `json:"purpose_of_stay"`
	ModeOfTransport   string `json:"mode_of_transport"`
	CustomPreferences string `json:"custom_preferences"`
	IncludeNightlife  bool   `json:"include_nightlife"`
}
