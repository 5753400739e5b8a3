package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/pkg/utils"
)

type fakeTextGenerator struct {
	output string
	err    error
	calls  int
}

func (f *fakeTextGenerator) GenerateJSON(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.output, f.err
}

func testDayContext() DayContext {
	return DayContext{
		Destination:     "Lisbon",
		Country:         "Portugal",
		Date:            "2026-09-02",
		HotelName:       "Hotel Mundial",
		PurposeOfStay:   "holiday",
		WeatherSummary:  "Sunny: 28.0°C (max), 19.0°C (min)",
		DayNumber:       1,
		TripLength:      3,
		ModeOfTransport: "transit",
	}
}

func TestGenerateDaySuggestionsParsesAndOrders(t *testing.T) {
	// Keys arrive shuffled and time_int flips between string and number;
	// the fences are typical model framing.
	generator := &fakeTextGenerator{output: "```json\n" + `{
		"10": {"time": "18:00", "activity": "Dinner", "place": "Ramiro", "time_int": "1788372000", "approx_distance": "1.2 kms"},
		"2": {"time": "11:00", "activity": "Visit castle", "place": "Castelo de S. Jorge", "time_int": 1788346800, "approx_distance": "2.0 kms"},
		"1": {"time": "09:30", "activity": "Morning walk", "place": "Miradouro da Graca", "time_int": 1788341400, "approx_distance": "2.6 kms"}
	}` + "\n```"}
	svc := NewSuggestionService(generator)

	suggestions, err := svc.GenerateDaySuggestions(context.Background(), testDayContext())
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	assert.Equal(t, "Miradouro da Graca", suggestions[0].Place)
	assert.Equal(t, "Castelo de S. Jorge", suggestions[1].Place)
	assert.Equal(t, "Ramiro", suggestions[2].Place)
	assert.Equal(t, int64(1788372000), suggestions[2].TimeInt)
	assert.Equal(t, "09:30", suggestions[0].Time)
}

func TestGenerateDaySuggestionsCachesByPrompt(t *testing.T) {
	generator := &fakeTextGenerator{output: `{
		"1": {"time": "09:30", "activity": "Walk", "place": "Parque Eduardo VII", "time_int": 1788341400, "approx_distance": "1 km"}
	}`}
	svc := NewSuggestionService(generator)

	first, err := svc.GenerateDaySuggestions(context.Background(), testDayContext())
	require.NoError(t, err)
	second, err := svc.GenerateDaySuggestions(context.Background(), testDayContext())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, generator.calls)

	// A different day context builds a different prompt and misses the cache.
	other := testDayContext()
	other.DayNumber = 2
	_, err = svc.GenerateDaySuggestions(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, generator.calls)
}

func TestGenerateNightSuggestionsUsesNightPrompt(t *testing.T) {
	generator := &fakeTextGenerator{output: `{
		"1": {"time": "22:30", "activity": "Cocktails", "place": "Pavilhao Chines", "time_int": 1788388200, "approx_distance": "1 km"}
	}`}
	svc := NewSuggestionService(generator)

	suggestions, err := svc.GenerateNightSuggestions(context.Background(), testDayContext())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Pavilhao Chines", suggestions[0].Place)
}

func TestParseSuggestionsFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"no JSON at all", "sorry, I cannot help with that", utils.ErrSuggestionParse},
		{"truncated object", `{"1": {"time": "09:30"`, utils.ErrSuggestionParse},
		{"empty object", `{}`, utils.ErrSuggestionEmpty},
		{"bad time format", `{"1": {"time": "9am", "activity": "Walk", "place": "Park"}}`, utils.ErrSuggestionParse},
		{"missing place", `{"1": {"time": "09:30", "activity": "Walk", "place": ""}}`, utils.ErrSuggestionParse},
		{"missing activity", `{"1": {"time": "09:30", "activity": " ", "place": "Park"}}`, utils.ErrSuggestionParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSuggestions(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSuggestionsLexicalFallbackForOddKeys(t *testing.T) {
	suggestions, err := parseSuggestions(`{
		"first": {"time": "09:30", "activity": "Walk", "place": "Park", "time_int": 1, "approx_distance": "1 km"},
		"2": {"time": "11:00", "activity": "Museum", "place": "MAAT", "time_int": 2, "approx_distance": "2 km"}
	}`)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Numeric ordinals sort ahead of non-numeric keys.
	assert.Equal(t, "MAAT", suggestions[0].Place)
	assert.Equal(t, "Park", suggestions[1].Place)
}

func TestGenerateDaySuggestionsGeneratorErrorPropagates(t *testing.T) {
	generator := &fakeTextGenerator{err: assert.AnError}
	svc := NewSuggestionService(generator)

	_, err := svc.GenerateDaySuggestions(context.Background(), testDayContext())
	assert.ErrorIs(t, err, assert.AnError)
}
