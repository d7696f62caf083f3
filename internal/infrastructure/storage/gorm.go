package storage

import (
	"context"
	"errors"

	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStorage struct {
	db *gorm.DB
}

// NewGormStorage keeps items as rows of the storage_entries table.
// The table must already exist.
func NewGormStorage(db *gorm.DB) domainRepo.Storage {
	return &gormStorage{db: db}
}

func (s *gormStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item entity.StorageEntry
	err := s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return item.Value, true, nil
}

func (s *gormStorage) SetItem(ctx context.Context, key string, value string) error {
	item := entity.StorageEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&item).Error
}
