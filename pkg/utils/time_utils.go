package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// WeekdayMondayZero maps a date onto the Monday=0..Sunday=6 convention the
// opening-hours schedule uses.
func WeekdayMondayZero(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FormatClock12h renders a compact "HHMM" schedule time as a 12-hour clock,
// e.g. "0900" -> "09:00 AM".
func FormatClock12h(hhmm string) (string, error) {
	t, err := time.Parse("1504", hhmm)
	if err != nil {
		return "", fmt.Errorf("bad schedule time %q: %w", hhmm, err)
	}
	return t.Format("03:04 PM"), nil
}

// DepartureEpoch combines a trip date with an activity's local "HH:MM" clock
// into epoch seconds, interpreted in the server's local zone.
func DepartureEpoch(date, clock string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, time.Local)
	if err != nil {
		return 0, fmt.Errorf("bad departure time %q %q: %w", date, clock, err)
	}
	return t.Unix(), nil
}
