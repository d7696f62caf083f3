package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"
)

type patientRepository struct {
	storage domainRepo.Storage
}

// NewPatientRepository stores the patient list as one JSON array under the
// "patients" key.
func NewPatientRepository(storage domainRepo.Storage) domainRepo.PatientRepository {
	return &patientRepository{storage: storage}
}

func (r *patientRepository) Load(ctx context.Context) ([]entity.Patient, error) {
	raw, ok, err := r.storage.GetItem(ctx, entity.StorageKeyPatients)
	if err != nil {
		return nil, fmt.Errorf("read patients: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return []entity.Patient{}, nil
	}

	var patients []entity.Patient
	if err := json.Unmarshal([]byte(raw), &patients); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Save(ctx context.Context, patients []entity.Patient) error {
	if patients == nil {
		patients = []entity.Patient{}
	}
	payload, err := json.Marshal(patients)
	if err != nil {
		return fmt.Errorf("encode patients: %w", err)
	}
	if err := r.storage.SetItem(ctx, entity.StorageKeyPatients, string(payload)); err != nil {
		return fmt.Errorf("write patients: %w", err)
	}
	return nil
}
