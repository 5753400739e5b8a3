package response_models

import (
	"math"
	"strconv"
	"strings"
)

// DurationSeconds carries a travel duration in seconds. +Inf marks an
// unknown/worst-case leg and marshals as the string "Infinity" because
// encoding/json rejects infinities.
type DurationSeconds float64

func (d DurationSeconds) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 1) {
		return []byte(`"Infinity"`), nil
	}
	return []byte(strconv.FormatFloat(float64(d), 'f', -1, 64)), nil
}

func (d *DurationSeconds) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "Infinity" {
		*d = DurationSeconds(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*d = DurationSeconds(v)
	return nil
}

func (d DurationSeconds) IsInfinite() bool {
	return math.IsInf(float64(d), 1)
}

type OpeningPeriodTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// OpeningPeriod mirrors the places textsearch schema: a missing close
// means the place stays open from the open time onward.
type OpeningPeriod struct {
	Open  OpeningPeriodTime  `json:"open"`
	Close *OpeningPeriodTime `json:"close,omitempty"`
}

type OpeningHoursSchedule struct {
	Periods []OpeningPeriod `json:"periods"`
}

// PlaceRecord is the verified place attached to an activity. Nil rating or
// review count means the backing search had no figure for it.
type PlaceRecord struct {
	Name             string                `json:"name"`
	FormattedAddress string                `json:"formatted_address"`
	Rating           *float64              `json:"rating,omitempty"`
	UserRatingsTotal *int                  `json:"user_ratings_total,omitempty"`
	URL              string                `json:"url"`
	Types            []string              `json:"types,omitempty"`
	OpeningHours     *OpeningHoursSchedule `json:"opening_hours,omitempty"`
}

const FieldUnavailable = "N/A"

func (p PlaceRecord) RatingText() string {
	if p.Rating == nil {
		return FieldUnavailable
	}
	return strconv.FormatFloat(*p.Rating, 'f', -1, 64)
}

func (p PlaceRecord) UserRatingsTotalText() string {
	if p.UserRatingsTotal == nil {
		return FieldUnavailable
	}
	return strconv.Itoa(*p.UserRatingsTotal)
}

type VerifiedActivity struct {
	Time                string          `json:"time"`
	Activity            string          `json:"activity"`
	Place               PlaceRecord     `json:"place"`
	OpeningHours        string          `json:"opening_hours"`
	TimeInt             int64           `json:"time_int"`
	ApproxDistance      string          `json:"approx_distance"`
	DurationToNext      string          `json:"duration_to_next"`
	DurationToNextValue DurationSeconds `json:"duration_to_next_value"`
	DurationToNextClass string          `json:"duration_to_next_class"`
}

type DayPlan struct {
	Date       string             `json:"date"`
	Weather    string             `json:"weather"`
	Activities []VerifiedActivity `json:"activities"`
}

type ItineraryVersion struct {
	Days []DayPlan `json:"days"`
}

// SkippedDay reports a day that produced no plan, with the reason the
// assembler dropped it.
type SkippedDay struct {
	Version int    `json:"version"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`
}

type TripItinerary struct {
	Destination string             `json:"destination"`
	Country     string             `json:"country"`
	Versions    []ItineraryVersion `json:"versions"`
	Skipped     []SkippedDay       `json:"skipped,omitempty"`
}

// TripItinerarySet is the full output of one generation request: three day
// versions, plus three night versions when nightlife was requested.
type TripItinerarySet struct {
	ID    string         `json:"id"`
	Day   *TripItinerary `json:"day"`
	Night *TripItinerary `json:"night,omitempty"`
}
