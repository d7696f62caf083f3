package repository

import (
	"context"

	"patient-registration/internal/domain/entity"
)

// PatientRepository reads and writes the whole patient list at once.
type PatientRepository interface {
	Load(ctx context.Context) ([]entity.Patient, error)
	Save(ctx context.Context, patients []entity.Patient) error
}

// IDCounterRepository hands out patient id numbers. Next returns the current
// counter value and persists the value after it.
type IDCounterRepository interface {
	Next(ctx context.Context) (int64, error)
}
