package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the canonical status an appointment label maps to
type AppointmentStatus string

const (
	AppointmentStatusCompleted    AppointmentStatus = "completed"
	AppointmentStatusScheduled    AppointmentStatus = "scheduled"
	AppointmentStatusCancelled    AppointmentStatus = "cancelled"
	AppointmentStatusUnrecognized AppointmentStatus = "unrecognized"
)

// appointmentStatusLabels maps lower-cased labels written by the booking flows
// (Spanish and English front-ends) to their canonical status.
var appointmentStatusLabels = map[string]AppointmentStatus{
	"completada": AppointmentStatusCompleted,
	"completado": AppointmentStatusCompleted,
	"completed":  AppointmentStatusCompleted,
	"finalizada": AppointmentStatusCompleted,
	"programada": AppointmentStatusScheduled,
	"agendada":   AppointmentStatusScheduled,
	"pendiente":  AppointmentStatusScheduled,
	"confirmada": AppointmentStatusScheduled,
	"scheduled":  AppointmentStatusScheduled,
	"cancelada":  AppointmentStatusCancelled,
	"cancelado":  AppointmentStatusCancelled,
	"cancelled":  AppointmentStatusCancelled,
	"canceled":   AppointmentStatusCancelled,
}

// ParseAppointmentStatus maps a raw label to its canonical status.
// Labels outside the dictionary are Unrecognized.
func ParseAppointmentStatus(raw string) AppointmentStatus {
	if status, ok := appointmentStatusLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return AppointmentStatusUnrecognized
}

// Appointment represents a booked visit of a pet to a clinic
type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PetID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"pet_id"`
	ServiceID *uuid.UUID `gorm:"type:uuid;index" json:"service_id,omitempty"`
	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	Status    string     `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Pet     Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanonicalStatus returns the canonical status of the raw label
func (a *Appointment) CanonicalStatus() AppointmentStatus {
	return ParseAppointmentStatus(a.Status)
}

// IsCompleted checks if the appointment took place
func (a *Appointment) IsCompleted() bool {
	return a.CanonicalStatus() == AppointmentStatusCompleted
}
