package utils

import "errors"

var (
	ErrInvalidDate       = errors.New("invalid date format")
	ErrInvalidDateRange  = errors.New("end date is before start date")
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrSuggestionParse   = errors.New("suggestion output could not be parsed")
	ErrSuggestionEmpty   = errors.New("suggestion output was empty")
)
