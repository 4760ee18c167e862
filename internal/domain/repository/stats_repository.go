package repository

import (
	"context"
	"errors"

	"clinic-stats/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreUnavailable marks failures where the statistics store could not be reached.
// Implementations wrap connection-level errors with it.
var ErrStoreUnavailable = errors.New("statistics store unavailable")

// StatsRepository fetches read-only row snapshots of a clinic inside a window.
// Appointment based fetches are ordered by start time ascending.
type StatsRepository interface {
	FetchAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.AppointmentRow, error)
	FetchServicesJoinedAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.ServiceAppointmentRow, error)
	FetchPetsJoinedAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.PetAppointmentRow, error)
	FetchReviews(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.ReviewRow, error)
	FetchTopServicesPreAggregated(ctx context.Context, clinicID uuid.UUID, window entity.DateRange, limit int) ([]entity.TopServiceRow, error)
}
