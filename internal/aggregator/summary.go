package aggregator

import (
	"clinic-stats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummarizeAppointments returns the appointment count and the number of
// distinct pets seen.
func SummarizeAppointments(rows []entity.AppointmentRow) (total int, uniquePatients int) {
	pets := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		pets[row.PetID] = struct{}{}
	}
	return len(rows), len(pets)
}

// CompletedRevenue sums the joined service price of completed appointments only.
func CompletedRevenue(rows []entity.ServiceAppointmentRow) decimal.Decimal {
	revenue := decimal.Zero
	for _, row := range rows {
		if !row.Price.Valid {
			continue
		}
		if entity.ParseAppointmentStatus(row.AppointmentStatus) != entity.AppointmentStatusCompleted {
			continue
		}
		revenue = revenue.Add(row.Price.Decimal)
	}
	return revenue
}
