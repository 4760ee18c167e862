package aggregator

import (
	"testing"
	"time"
	_ "time/tzdata"

	"clinic-stats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointmentAt(start time.Time, status string) entity.AppointmentRow {
	return entity.AppointmentRow{ID: uuid.New(), StartTime: start, Status: status, PetID: uuid.New()}
}

func TestAggregateAppointments_Empty(t *testing.T) {
	stats := AggregateAppointments(nil, time.UTC)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, entity.StatusDistribution{}, stats.StatusDistribution)
	assert.NotNil(t, stats.PerDay)
	assert.Empty(t, stats.PerDay)
}

func TestAggregateAppointments_StatusDistribution(t *testing.T) {
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := []entity.AppointmentRow{
		appointmentAt(day, "completada"),
		appointmentAt(day, "completada"),
		appointmentAt(day, "cancelada"),
	}

	stats := AggregateAppointments(rows, time.UTC)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, entity.StatusDistribution{Completed: 2, Scheduled: 0, Cancelled: 1}, stats.StatusDistribution)
}

func TestAggregateAppointments_UnrecognizedCountsOnlyInTotal(t *testing.T) {
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := []entity.AppointmentRow{
		appointmentAt(day, "Completada"),
		appointmentAt(day, "en sala"),
		appointmentAt(day, ""),
		appointmentAt(day, " PROGRAMADA "),
	}

	stats := AggregateAppointments(rows, time.UTC)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.StatusDistribution.Sum())
	assert.Less(t, stats.StatusDistribution.Sum(), stats.Total)
	assert.Equal(t, 4, stats.PerDay[0].Total)
	assert.Equal(t, 1, stats.PerDay[0].Completed)
	assert.Equal(t, 1, stats.PerDay[0].Scheduled)
}

func TestAggregateAppointments_PerDaySortedChronologically(t *testing.T) {
	// deliberately out of order
	rows := []entity.AppointmentRow{
		appointmentAt(time.Date(2025, 2, 3, 15, 0, 0, 0, time.UTC), "scheduled"),
		appointmentAt(time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC), "completed"),
		appointmentAt(time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC), "cancelled"),
		appointmentAt(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), "completed"),
	}

	stats := AggregateAppointments(rows, time.UTC)

	dates := make([]string, 0, len(stats.PerDay))
	for _, day := range stats.PerDay {
		dates = append(dates, day.Date)
	}
	assert.Equal(t, []string{"2024-12-31", "2025-01-28", "2025-02-03"}, dates)
	assert.Equal(t, entity.DailyAppointments{Date: "2025-02-03", Total: 2, Scheduled: 1, Cancelled: 1}, stats.PerDay[2])
}

func TestAggregateAppointments_DateKeyUsesRowTimezone(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	rows := []entity.AppointmentRow{
		appointmentAt(time.Date(2025, 1, 10, 22, 0, 0, 0, bogota), "completed"),
	}

	stats := AggregateAppointments(rows, nil)

	assert.Equal(t, "2025-01-10", stats.PerDay[0].Date)
}

func TestAggregateAppointments_DateKeyUsesGivenLocation(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// 02:00 UTC on the 10th is still the evening of the 9th in Bogota
	utcRow := appointmentAt(time.Date(2025, 1, 10, 2, 0, 0, 0, time.UTC), "completed")
	// read back from the driver in the session zone
	bogotaRow := appointmentAt(time.Date(2025, 1, 10, 7, 0, 0, 0, time.UTC).In(bogota), "completed")

	testCases := []struct {
		name string
		row  entity.AppointmentRow
		loc  *time.Location
		want string
	}{
		{name: "utc row keyed in utc", row: utcRow, loc: time.UTC, want: "2025-01-10"},
		{name: "utc row keyed in bogota", row: utcRow, loc: bogota, want: "2025-01-09"},
		{name: "bogota row keyed in utc", row: bogotaRow, loc: time.UTC, want: "2025-01-10"},
		{name: "bogota row keyed in bogota", row: bogotaRow, loc: bogota, want: "2025-01-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats := AggregateAppointments([]entity.AppointmentRow{tc.row}, tc.loc)
			require.Len(t, stats.PerDay, 1)
			assert.Equal(t, tc.want, stats.PerDay[0].Date)
		})
	}
}

func TestAggregateAppointments_DaysMatchResolvedWindow(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	resolver := NewDateRangeResolverWithClock(30, bogota, fixedClock(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	window, err := resolver.Resolve("2025-01-10", "2025-01-10")
	require.NoError(t, err)

	rows := []entity.AppointmentRow{
		appointmentAt(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC), "completed"),
		appointmentAt(time.Date(2025, 1, 11, 4, 59, 0, 0, time.UTC).In(bogota), "scheduled"),
	}
	for _, row := range rows {
		inside := !row.StartTime.Before(window.From) && !row.StartTime.After(window.To)
		require.True(t, inside, "%v outside %v..%v", row.StartTime, window.From, window.To)
	}

	stats := AggregateAppointments(rows, resolver.Location())

	require.Len(t, stats.PerDay, 1)
	assert.Equal(t, "2025-01-10", stats.PerDay[0].Date)
	assert.Equal(t, 2, stats.PerDay[0].Total)
}

func TestAggregateAppointments_CountsAddUp(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	labels := []string{"completada", "programada", "cancelada", "no-show", "Completed", "reprogramada"}

	rows := make([]entity.AppointmentRow, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, appointmentAt(base.Add(time.Duration(i*7)*time.Hour), labels[i%len(labels)]))
	}

	stats := AggregateAppointments(rows, time.UTC)

	perDayTotal := 0
	for i, day := range stats.PerDay {
		perDayTotal += day.Total
		if i > 0 {
			assert.Less(t, stats.PerDay[i-1].Date, day.Date)
		}
	}
	assert.Equal(t, stats.Total, perDayTotal)
	assert.LessOrEqual(t, stats.StatusDistribution.Sum(), stats.Total)
}
