package repository

import (
	"context"

	"github.com/google/uuid"
)

type ClinicRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
