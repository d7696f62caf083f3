package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"
)

type idCounterRepository struct {
	storage domainRepo.Storage
	seed    int64
}

// NewIDCounterRepository keeps the next patient number under the
// "nextPatientId" key. A missing, zero or unreadable counter starts at seed.
func NewIDCounterRepository(storage domainRepo.Storage, seed int64) domainRepo.IDCounterRepository {
	return &idCounterRepository{storage: storage, seed: seed}
}

func (r *idCounterRepository) Next(ctx context.Context) (int64, error) {
	raw, ok, err := r.storage.GetItem(ctx, entity.StorageKeyNextPatientID)
	if err != nil {
		return 0, fmt.Errorf("read id counter: %w", err)
	}

	current := r.seed
	if ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && n != 0 {
			current = n
		}
	}

	if err := r.storage.SetItem(ctx, entity.StorageKeyNextPatientID, strconv.FormatInt(current+1, 10)); err != nil {
		return 0, fmt.Errorf("write id counter: %w", err)
	}
	return current, nil
}
