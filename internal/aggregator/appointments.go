package aggregator

import (
	"sort"
	"time"

	"clinic-stats/internal/domain/entity"
)

// AggregateAppointments counts appointments, their canonical status distribution
// and a per-day series.
//
// Unrecognized statuses count toward Total and the day's total but are left out of
// the status distribution, so the distribution may sum to less than Total.
//
// Days are keyed in loc so the series lines up with a window resolved in the same
// zone. A nil loc keys each row in the zone its StartTime carries.
func AggregateAppointments(rows []entity.AppointmentRow, loc *time.Location) entity.AppointmentStats {
	stats := entity.AppointmentStats{
		Total:  len(rows),
		PerDay: []entity.DailyAppointments{},
	}

	byDate := make(map[string]*entity.DailyAppointments)
	for _, row := range rows {
		start := row.StartTime
		if loc != nil {
			start = start.In(loc)
		}
		key := start.Format(dateLayout)
		day, ok := byDate[key]
		if !ok {
			day = &entity.DailyAppointments{Date: key}
			byDate[key] = day
		}
		day.Total++

		switch entity.ParseAppointmentStatus(row.Status) {
		case entity.AppointmentStatusCompleted:
			stats.StatusDistribution.Completed++
			day.Completed++
		case entity.AppointmentStatusScheduled:
			stats.StatusDistribution.Scheduled++
			day.Scheduled++
		case entity.AppointmentStatusCancelled:
			stats.StatusDistribution.Cancelled++
			day.Cancelled++
		}
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	// YYYY-MM-DD sorts chronologically
	sort.Strings(keys)

	for _, key := range keys {
		stats.PerDay = append(stats.PerDay, *byDate[key])
	}

	return stats
}
