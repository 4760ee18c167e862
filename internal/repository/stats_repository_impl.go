package repository

import (
	"context"

	"clinic-stats/internal/domain/entity"
	domainRepo "clinic-stats/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) domainRepo.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) FetchAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.AppointmentRow, error) {
	var rows []entity.AppointmentRow
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Select("id, start_time, status, pet_id, service_id").
		Where("clinic_id = ? AND start_time BETWEEN ? AND ?", clinicID, window.From, window.To).
		Order("start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

// FetchServicesJoinedAppointments left joins services so appointments whose
// service is missing still come back, with a null name and price.
func (r *statsRepository) FetchServicesJoinedAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.ServiceAppointmentRow, error) {
	var rows []entity.ServiceAppointmentRow
	err := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select("a.service_id, s.name AS service_name, s.price, a.status AS appointment_status").
		Joins("LEFT JOIN services AS s ON s.id = a.service_id").
		Where("a.clinic_id = ? AND a.start_time BETWEEN ? AND ?", clinicID, window.From, window.To).
		Order("a.start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

func (r *statsRepository) FetchPetsJoinedAppointments(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.PetAppointmentRow, error) {
	var rows []entity.PetAppointmentRow
	err := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select("a.pet_id, p.species, p.age").
		Joins("JOIN pets AS p ON p.id = a.pet_id").
		Where("a.clinic_id = ? AND a.start_time BETWEEN ? AND ?", clinicID, window.From, window.To).
		Order("a.start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

func (r *statsRepository) FetchReviews(ctx context.Context, clinicID uuid.UUID, window entity.DateRange) ([]entity.ReviewRow, error) {
	var rows []entity.ReviewRow
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("rating, date").
		Where("clinic_id = ? AND date BETWEEN ? AND ?", clinicID, window.From, window.To).
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

// FetchTopServicesPreAggregated calls the clinic_top_services function installed
// by the migrations. Rows come back sorted by count and limited.
func (r *statsRepository) FetchTopServicesPreAggregated(ctx context.Context, clinicID uuid.UUID, window entity.DateRange, limit int) ([]entity.TopServiceRow, error) {
	var rows []entity.TopServiceRow
	err := r.db.WithContext(ctx).
		Raw("SELECT service_name AS name, appointment_count AS count, revenue FROM clinic_top_services(?, ?, ?, ?)",
			clinicID, window.From, window.To, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}
