package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row shapes returned by the statistics store. They are read-only snapshots
// of a clinic's data inside a window.

type AppointmentRow struct {
	ID        uuid.UUID
	StartTime time.Time
	Status    string
	PetID     uuid.UUID
	ServiceID *uuid.UUID
}

// ServiceAppointmentRow is one appointment joined with its service.
// ServiceName and Price are nil when the service could not be joined.
type ServiceAppointmentRow struct {
	ServiceID         *uuid.UUID
	ServiceName       *string
	Price             decimal.NullDecimal
	AppointmentStatus string
}

type PetAppointmentRow struct {
	PetID   uuid.UUID
	Species string
	Age     *float64
}

type ReviewRow struct {
	Rating int
	Date   time.Time
}

// HasValidRating checks the rating is within the star scale
func (r ReviewRow) HasValidRating() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}

// TopServiceRow is produced by the pre-aggregated top services function
type TopServiceRow struct {
	Name    string
	Count   int
	Revenue decimal.Decimal
}
