package aggregator

import (
	"strings"
	"time"

	"clinic-stats/internal/domain/entity"
)

const (
	dateLayout        = "2006-01-02"
	defaultWindowDays = 30
)

// DateRangeResolver turns optional from/to query values into a window.
// Inverted windows are returned as-is; queries over them simply match nothing.
//
// Date-only values are read as calendar days in loc, the same zone the per-day
// appointment series is keyed in.
type DateRangeResolver struct {
	windowDays int
	loc        *time.Location
	now        func() time.Time
}

// NewDateRangeResolver uses UTC when loc is nil.
func NewDateRangeResolver(windowDays int, loc *time.Location) *DateRangeResolver {
	return NewDateRangeResolverWithClock(windowDays, loc, time.Now)
}

func NewDateRangeResolverWithClock(windowDays int, loc *time.Location, now func() time.Time) *DateRangeResolver {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DateRangeResolver{windowDays: windowDays, loc: loc, now: now}
}

// Location is the zone calendar days are resolved in.
func (r *DateRangeResolver) Location() *time.Location {
	return r.loc
}

// Resolve defaults a missing to to now and a missing from to windowDays before now.
// A date-only to covers that whole day.
func (r *DateRangeResolver) Resolve(from, to string) (entity.DateRange, error) {
	now := r.now()
	window := entity.DateRange{
		From: now.AddDate(0, 0, -r.windowDays),
		To:   now,
	}

	if from = strings.TrimSpace(from); from != "" {
		t, err := parseBoundary(from, r.loc, false)
		if err != nil {
			return entity.DateRange{}, &ValidationError{Field: "from", Value: from}
		}
		window.From = t
	}

	if to = strings.TrimSpace(to); to != "" {
		t, err := parseBoundary(to, r.loc, true)
		if err != nil {
			return entity.DateRange{}, &ValidationError{Field: "to", Value: to}
		}
		window.To = t
	}

	return window, nil
}

func parseBoundary(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		if endOfDay {
			// postgres timestamps keep microseconds
			return t.AddDate(0, 0, 1).Add(-time.Microsecond), nil
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
