package repository

import (
	"context"

	domainRepo "clinic-stats/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) domainRepo.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw("SELECT EXISTS(SELECT 1 FROM clinics WHERE id = ?)", id).
		Scan(&exists).Error
	if err != nil {
		return false, classifyError(err)
	}
	return exists, nil
}
