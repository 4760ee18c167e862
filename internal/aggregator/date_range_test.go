package aggregator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDateRangeResolver_DefaultsToTrailingWindow(t *testing.T) {
	now := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	resolver := NewDateRangeResolverWithClock(30, time.UTC, fixedClock(now))

	window, err := resolver.Resolve("", "")
	require.NoError(t, err)

	assert.Equal(t, now, window.To)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), window.From)
}

func TestDateRangeResolver_NonPositiveDaysUsesThirty(t *testing.T) {
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	resolver := NewDateRangeResolverWithClock(0, nil, fixedClock(now))

	window, err := resolver.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), window.From)
}

func TestDateRangeResolver_ParsesBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	resolver := NewDateRangeResolverWithClock(30, time.UTC, fixedClock(now))

	testCases := []struct {
		name     string
		from     string
		to       string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "date only to covers the whole day",
			from:     "2025-01-01",
			to:       "2025-01-31",
			wantFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 31, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:     "rfc3339 kept as given",
			from:     "2025-01-01T08:30:00Z",
			to:       "2025-01-02T18:00:00Z",
			wantFrom: time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "missing to defaults to now",
			from:     "2025-05-20",
			wantFrom: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
			wantTo:   now,
		},
		{
			name:     "missing from defaults independently",
			to:       "2025-05-20",
			wantFrom: now.AddDate(0, 0, -30),
			wantTo:   time.Date(2025, 5, 20, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:     "inverted window is not corrected",
			from:     "2025-02-10",
			to:       "2025-02-01",
			wantFrom: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 2, 1, 23, 59, 59, 999999000, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window, err := resolver.Resolve(tc.from, tc.to)
			require.NoError(t, err)
			assert.True(t, tc.wantFrom.Equal(window.From), "from = %v, want %v", window.From, tc.wantFrom)
			assert.True(t, tc.wantTo.Equal(window.To), "to = %v, want %v", window.To, tc.wantTo)
		})
	}
}

func TestDateRangeResolver_DateOnlyUsesLocation(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	resolver := NewDateRangeResolverWithClock(30, bogota, fixedClock(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))

	window, err := resolver.Resolve("2025-01-10", "2025-01-10")
	require.NoError(t, err)

	assert.Same(t, bogota, resolver.Location())
	assert.True(t, time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC).Equal(window.From), "from = %v", window.From)
	assert.True(t, time.Date(2025, 1, 11, 4, 59, 59, 999999000, time.UTC).Equal(window.To), "to = %v", window.To)

	// an explicit offset wins over the configured zone
	window, err = resolver.Resolve("2025-01-10T00:00:00Z", "")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC).Equal(window.From))
}

func TestDateRangeResolver_NilLocationIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewDateRangeResolver(30, nil).Location())
}

func TestDateRangeResolver_RejectsMalformedDates(t *testing.T) {
	resolver := NewDateRangeResolver(30, nil)

	testCases := []struct {
		name      string
		from      string
		to        string
		wantField string
	}{
		{name: "garbage from", from: "yesterday", wantField: "from"},
		{name: "impossible day", from: "2025-02-30", wantField: "from"},
		{name: "bad month in to", to: "2025-13-01", wantField: "to"},
		{name: "slashes", to: "01/02/2025", wantField: "to"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(tc.from, tc.to)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}
