package repository

import (
	"context"
	"sync"
	"time"

	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"
)

type memoryAuditLogRepository struct {
	mu     sync.RWMutex
	logs   []entity.AuditLog
	nextID int64
	now    func() time.Time
}

// NewMemoryAuditLogRepository keeps audit logs in process memory. Used when
// the storage driver has no SQL database behind it.
func NewMemoryAuditLogRepository() domainRepo.AuditLogRepository {
	return &memoryAuditLogRepository{nextID: 1, now: time.Now}
}

func (r *memoryAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = r.nextID
	r.nextID++
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.now()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memoryAuditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

func (r *memoryAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, log := range r.logs {
		if log.ID == id {
			found := log
			return &found, nil
		}
	}
	return nil, nil
}
